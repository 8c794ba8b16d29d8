package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-shaper/dsp/core"
	"github.com/cwbudde/algo-shaper/dsp/shaper"
	"github.com/cwbudde/algo-shaper/dsp/shaper/design"
	"github.com/cwbudde/algo-shaper/dsp/signal"
	"github.com/cwbudde/algo-shaper/measure/shaping"
)

// sensitivityRatios are the f/fn points of the -sens table.
var sensitivityRatios = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.3, 1.4, 1.5}

// mode is the vibration mode the shapers were designed for.
type mode struct {
	frequency float64
	damping   float64
}

func modeOf(p design.Params) mode {
	return mode{frequency: p.Frequency, damping: p.Damping}
}

// stepSamples returns a run length covering the shaper with a margin of a
// quarter of its length on either side.
func stepSamples(spec shaper.Spec) int {
	return spec.MaxOffset() + 2 + spec.MaxOffset()/4
}

// shapedStep returns n samples of a unit step applied at sample 1 and
// passed through spec.
func shapedStep(spec shaper.Spec, n int) ([]float64, error) {
	r, err := shaper.New(spec)
	if err != nil {
		return nil, err
	}
	g := signal.NewGenerator(core.WithSampleRate(spec.SampleRate()))
	cmd, err := g.Step(1, n)
	if err != nil {
		return nil, err
	}
	cmd[0] = 0
	r.ProcessBlock(cmd)
	return cmd, nil
}

func printSummary(w io.Writer, designs []shaped, m mode) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Type\tImpulses\tDuration [ms]\tLatency [smp]\tV@f [%%]\tV@0.8f [%%]\tV@1.2f [%%]\tRise [ms]\tGain@f [dB]\n")
	fmt.Fprintf(tw, "----\t--------\t-------------\t-------------\t--------\t-----------\t-----------\t---------\t-----------\n")

	an := shaping.NewAnalyzer(designs[0].spec.SampleRate())
	for _, d := range designs {
		cmd, err := shapedStep(d.spec, stepSamples(d.spec))
		if err != nil {
			return fmt.Errorf("%s: %w", d.typ, err)
		}
		metrics, err := an.Analyze(cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", d.typ, err)
		}
		// Above Nyquist the loop cannot represent the mode at all.
		gain := "-"
		if g, err := shaping.Gain(d.spec, m.frequency); err == nil {
			gain = fmt.Sprintf("%.1f", core.LinearToDB(g))
		}

		v := func(ratio float64) float64 {
			return 100 * design.SampledResidualVibration(d.spec, ratio*m.frequency, m.damping)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%s\n",
			d.typ,
			d.spec.Len(),
			1000*d.spec.Duration(),
			d.spec.MaxOffset(),
			v(1), v(0.8), v(1.2),
			1000*metrics.RiseTime,
			gain,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Type\tAmplitudes\tDelays [ms]\tOffsets [smp]\n")
	fmt.Fprintf(tw, "----\t----------\t-----------\t-------------\n")
	for _, d := range designs {
		delays := d.spec.Delays()
		for i := range delays {
			delays[i] *= 1000
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n",
			d.typ,
			joinFloats(d.spec.Amplitudes(), "%.5f"),
			joinFloats(delays, "%.3f"),
			d.spec.Offsets(),
		)
	}
	return tw.Flush()
}

func printSensitivity(w io.Writer, designs []shaped, m mode) error {
	fmt.Fprintf(w, "\nResidual vibration [%%] at damping %.3f\n", m.damping)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"f/fn", "f [Hz]"}
	for _, d := range designs {
		header = append(header, d.typ.String())
	}
	fmt.Fprintf(tw, "%s\t\n", strings.Join(header, "\t"))

	for _, ratio := range sensitivityRatios {
		f := ratio * m.frequency
		row := []string{fmt.Sprintf("%.1f", ratio), fmt.Sprintf("%.2f", f)}
		for _, d := range designs {
			row = append(row, fmt.Sprintf("%.2f", 100*design.SampledResidualVibration(d.spec, f, m.damping)))
		}
		fmt.Fprintf(tw, "%s\t\n", strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printSteps(w io.Writer, designs []shaped, n int) error {
	for _, d := range designs {
		cmd, err := shapedStep(d.spec, n)
		if err != nil {
			return fmt.Errorf("%s: %w", d.typ, err)
		}

		fmt.Fprintf(w, "\n%s unit step\n", d.typ)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "Sample\tTime [s]\tCommand\t\n")
		for i, x := range cmd {
			fmt.Fprintf(tw, "%d\t%.4f\t%.6f\t\n", i, float64(i)/d.spec.SampleRate(), x)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func joinFloats(v []float64, format string) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf(format, x)
	}
	return strings.Join(parts, " ")
}
