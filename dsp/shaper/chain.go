package shaper

import "fmt"

// Chain cascades runtimes: each stage shapes the output of the previous one.
// Cascading a shaper per vibration mode cancels several modes at once.
type Chain struct {
	stages []*Runtime
}

// NewChain builds a chain from stages bound to the same sample rate.
func NewChain(stages ...*Runtime) (*Chain, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", ErrInvalidParameter, i)
		}
		if s.spec.SampleRate() != stages[0].spec.SampleRate() {
			return nil, fmt.Errorf("%w: stage %d runs at %g Hz, stage 0 at %g Hz",
				ErrInvalidParameter, i, s.spec.SampleRate(), stages[0].spec.SampleRate())
		}
	}
	return &Chain{stages: append([]*Runtime(nil), stages...)}, nil
}

// Tick passes x through every stage in order.
func (c *Chain) Tick(x float64) float64 {
	for _, s := range c.stages {
		x = s.Tick(x)
	}
	return x
}

// Reset resets every stage.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Latency returns the total shaper length in samples.
func (c *Chain) Latency() int {
	total := 0
	for _, s := range c.stages {
		total += s.Latency()
	}
	return total
}
