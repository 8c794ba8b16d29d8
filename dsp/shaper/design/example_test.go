package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-shaper/dsp/shaper/design"
)

func ExampleZV() {
	spec, err := design.ZV(1, 0, 100)
	if err != nil {
		panic(err)
	}
	fmt.Println(spec.Amplitudes(), spec.Delays(), spec.Offsets())

	// Output:
	// [0.5 0.5] [0 0.5] [0 50]
}

func ExampleDesign() {
	spec, err := design.Design(design.Params{
		Type:       design.TypeZVD,
		Frequency:  2,
		SampleRate: 1000,
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(spec.Offsets())

	// Output:
	// [0 250 500]
}

func ExampleResidualVibration() {
	zv, _ := design.ZV(10, 0, 1000)
	ei, _ := design.EI(10, 0, 0.05, 1000)

	// The mode turned out 10 % softer than designed for.
	fmt.Printf("zv=%.3f ei=%.3f\n",
		design.ResidualVibration(zv, 9, 0),
		design.ResidualVibration(ei, 9, 0))

	// Output:
	// zv=0.156 ei=0.023
}

func ExampleParseType() {
	typ, err := design.ParseType("EI")
	if err != nil {
		panic(err)
	}
	fmt.Println(typ)

	// Output:
	// ei
}
