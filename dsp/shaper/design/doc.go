// Package design computes input-shaper impulse sequences from the physical
// parameters of the vibration mode to cancel.
//
// All designers are pure functions returning a [shaper.Spec] whose delays are
// in seconds; conversion to whole samples happens when a runtime is built.
//
// Shaper families trade settling delay against robustness to errors in the
// estimated frequency and damping:
//
//   - ZV: two impulses, half a damped period long. Cancels the design mode
//     exactly but is sensitive to modelling error.
//   - ZVD: three impulses, one damped period long, with zero derivative of
//     the residual vibration at the design point.
//   - EI: three impulses that allow a specified residual vibration at the
//     design frequency in exchange for a much wider insensitive band.
//   - MZV, 2-hump EI and 3-hump EI: further trade-offs between the above.
//
// [Convolve] combines shapers designed for different modes into one.
// [ResidualVibration] and [Sensitivity] evaluate how much vibration a shaper
// leaves for a mode that differs from the design point.
package design
