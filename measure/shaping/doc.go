// Package shaping measures what a shaper does to a command.
//
// Two views are provided:
//
//   - Response and Gain: the frequency response of the sampled impulse
//     train, showing where the shaper notches.
//   - Analyzer: time-domain step metrics of a shaped command (final value,
//     overshoot, rise time, delay and settling time).
//
// # Usage
//
//	spec, _ := design.ZV(10, 0.05, 1000)
//	resp, _ := shaping.Response(spec, 0)
//	fmt.Printf("gain at 10 Hz = %.3f\n", resp.At(10))
//
//	r, _ := shaper.New(spec)
//	r.ProcessBlock(step)
//	m, _ := shaping.NewAnalyzer(1000).Analyze(step)
//	fmt.Printf("rise time = %.3f s\n", m.RiseTime)
package shaping
