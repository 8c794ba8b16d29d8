// Command shaperinfo designs input shapers and prints their impulse
// sequences, residual vibration and shaped step commands.
//
// Usage:
//
//	shaperinfo [flags] [type ...]
//
// Without arguments it prints info for all shaper types.
//
// Examples:
//
//	shaperinfo -freq 42 -damping 0.1 zv ei
//	shaperinfo -freq 42 -sens mzv 2hump_ei
//	shaperinfo -freq 5 -rate 100 -step 80 zvd
//	shaperinfo -freq 42 -plot shapers.png -all
//	shaperinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/algo-shaper/dsp/shaper"
	"github.com/cwbudde/algo-shaper/dsp/shaper/design"
)

// options collects the parsed command line.
type options struct {
	params design.Params
	all    bool
	list   bool
	steps  int
	sens   bool
	plot   string
	names  []string
}

// shaped is one successfully designed shaper.
type shaped struct {
	typ  design.Type
	spec shaper.Spec
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("shaperinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.Float64Var(&o.params.Frequency, "freq", 10, "natural frequency of the mode in Hz")
	fs.Float64Var(&o.params.Damping, "damping", 0.05, "damping ratio of the mode in [0,1)")
	fs.Float64Var(&o.params.VibTol, "vtol", design.DefaultVibTol, "tolerated residual vibration for ei (0..1)")
	fs.Float64Var(&o.params.SampleRate, "rate", 1000, "control loop update rate in Hz")
	fs.BoolVar(&o.all, "all", false, "show all shaper types")
	fs.BoolVar(&o.list, "list", false, "list available shaper types")
	fs.IntVar(&o.steps, "step", 0, "print `N` samples of the shaped unit step")
	fs.BoolVar(&o.sens, "sens", false, "print residual vibration from 0.5 to 1.5 times the design frequency")
	fs.StringVar(&o.plot, "plot", "", "write shaped step and sensitivity plots to this PNG `file`")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: shaperinfo [flags] [type ...]\n\n")
		fmt.Fprintf(stderr, "Designs input shapers for one vibration mode and prints their properties.\n")
		fmt.Fprintf(stderr, "Without arguments or with -all, prints info for all types.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  shaperinfo -freq 42 -damping 0.1 zv ei\n")
		fmt.Fprintf(stderr, "  shaperinfo -freq 5 -rate 100 -step 80 zvd\n")
		fmt.Fprintf(stderr, "  shaperinfo -freq 42 -plot shapers.png -all\n")
		fmt.Fprintf(stderr, "  shaperinfo -list\n")
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.steps < 0 {
		return o, fmt.Errorf("-step must be >= 0: %d", o.steps)
	}
	o.names = fs.Args()
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	}

	if o.list {
		for _, typ := range design.Types() {
			fmt.Fprintln(stdout, typ)
		}
		return 0
	}

	types := resolveTypes(o.names, o.all, stderr)
	designs := designAll(types, o.params, stderr)
	if len(designs) == 0 {
		fmt.Fprintf(stderr, "error: no shaper could be designed\n")
		return 1
	}

	m := modeOf(o.params)
	if err := printSummary(stdout, designs, m); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if o.sens {
		if err := printSensitivity(stdout, designs, m); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	if o.steps > 0 {
		if err := printSteps(stdout, designs, o.steps); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	if o.plot != "" {
		if err := writePlot(o.plot, designs, m); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "\nwrote %s\n", o.plot)
	}
	return 0
}

func resolveTypes(names []string, all bool, stderr io.Writer) []design.Type {
	if len(names) == 0 || all {
		return design.Types()
	}
	var out []design.Type
	for _, name := range names {
		typ, err := design.ParseType(name)
		if err != nil {
			fmt.Fprintf(stderr, "warning: unknown shaper %q (use -list to see available)\n", strings.TrimSpace(name))
			continue
		}
		out = append(out, typ)
	}
	return out
}

func designAll(types []design.Type, params design.Params, stderr io.Writer) []shaped {
	var out []shaped
	for _, typ := range types {
		p := params
		p.Type = typ
		if typ == design.TypeTwoHumpEI || typ == design.TypeThreeHumpEI {
			if p.VibTol != design.DefaultVibTol {
				fmt.Fprintf(stderr, "warning: %s: -vtol %g ignored, using %g\n", typ, p.VibTol, design.DefaultVibTol)
			}
			p.VibTol = design.DefaultVibTol
		}
		spec, err := design.Design(p)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %s: %v\n", typ, err)
			continue
		}
		out = append(out, shaped{typ: typ, spec: spec})
	}
	return out
}
