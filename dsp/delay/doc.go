// Package delay provides a fixed-size circular delay line with integer
// sample taps.
package delay
