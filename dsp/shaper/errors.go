package shaper

import "errors"

var (
	// ErrInvalidParameter reports a physically meaningless shaper parameter
	// or an inconsistent impulse sequence.
	ErrInvalidParameter = errors.New("shaper: invalid parameter")

	// ErrBufferUndersized reports a delay line shorter than the last impulse
	// offset plus one sample.
	ErrBufferUndersized = errors.New("shaper: delay line too short for shaper")

	// ErrNoStages reports a chain built without runtimes.
	ErrNoStages = errors.New("shaper: chain needs at least one stage")
)
