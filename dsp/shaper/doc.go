// Package shaper runs input shapers: short sequences of delayed, weighted
// impulses that are convolved with a motion command so that a lightly
// damped mode of the driven mechanism is not excited.
//
// A [Spec] holds the impulse amplitudes and delays (in seconds) together
// with the control-loop rate they are bound to. Designers for the common
// shaper families (ZV, ZVD, EI and friends) live in the sub-package
// shaper/design.
//
// A [Runtime] owns a fixed-size delay line sized once from the spec. Each
// call to [Runtime.Tick] deposits the current command's weighted copies into
// the line at their future positions and returns the fully accumulated value
// for the current cycle. Tick runs in constant time proportional to the
// number of impulses and never allocates, which makes it suitable for a
// fixed-rate control loop.
//
// Runtimes are not safe for concurrent use. Shape each axis with its own
// Runtime, or use a [Bank], which keeps one independent Runtime per axis.
// [Chain] cascades runtimes for multi-mode shaping and [Direct] computes the
// same convolution from an input history.
package shaper
