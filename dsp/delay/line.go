package delay

import (
	"fmt"

	"github.com/cwbudde/algo-shaper/dsp/core"
)

// Line is a circular delay line holding the most recent Len() samples.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago; delay 0 is the most
// recent write. delay must lie in [0, Len()).
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := d.writePos - 1 - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Fill sets every stored sample to value, as if value had been written
// Len() times.
func (d *Line) Fill(value float64) {
	core.Fill(d.buffer, value)
	d.writePos = 0
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
