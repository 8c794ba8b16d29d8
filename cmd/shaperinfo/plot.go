package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
	"github.com/cwbudde/algo-shaper/dsp/shaper/design"
)

const sensitivityPoints = 201

// writePlot renders the shaped unit steps (top) and the sensitivity curves
// (bottom) into a single PNG.
func writePlot(path string, designs []shaped, m mode) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return fmt.Errorf("plot file must end in .png: %s", path)
	}

	step, err := stepPlot(designs, m)
	if err != nil {
		return err
	}
	sens, err := sensitivityPlot(designs, m)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(vgimg.UseWH(8*vg.Inch, 9*vg.Inch), vgimg.UseDPI(150))
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadX: vg.Millimeter, PadY: 4 * vg.Millimeter}
	canvases := plot.Align([][]*plot.Plot{{step}, {sens}}, tiles, dc)
	step.Draw(canvases[0][0])
	sens.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		f.Close()
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close png: %w", err)
	}
	return nil
}

func stepPlot(designs []shaped, m mode) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shaped unit step, %.2f Hz, damping %.3f", m.frequency, m.damping)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "command"
	p.Legend.Top = true
	p.Legend.Left = true

	rate := designs[0].spec.SampleRate()
	n := 0
	for _, d := range designs {
		n = max(n, stepSamples(d.spec))
	}

	unshaped := shaper.MustSpec([]float64{1}, []float64{0}, rate)
	series := append([]shaped{{spec: unshaped}}, designs...)
	for i, d := range series {
		cmd, err := shapedStep(d.spec, n)
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(cmd))
		for j, x := range cmd {
			pts[j].X = float64(j) / rate
			pts[j].Y = x
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.StepStyle = plotter.PostStep
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)

		name := "unshaped"
		if i > 0 {
			name = d.typ.String()
		}
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func sensitivityPlot(designs []shaped, m mode) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Residual vibration"
	p.X.Label.Text = "f / fn"
	p.Y.Label.Text = "vibration (%)"
	p.Legend.Top = true

	ratios := make([]float64, sensitivityPoints)
	freqs := make([]float64, sensitivityPoints)
	for i := range ratios {
		ratios[i] = 0.5 + float64(i)/float64(sensitivityPoints-1)
		freqs[i] = ratios[i] * m.frequency
	}

	for i, d := range designs {
		v := design.Sensitivity(d.spec, m.damping, freqs)
		pts := make(plotter.XYs, len(v))
		for j := range v {
			pts[j].X = ratios[j]
			pts[j].Y = 100 * v[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i + 1)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(d.typ.String(), line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}
