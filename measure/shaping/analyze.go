package shaping

import (
	"errors"
	"math"
)

// Errors returned by command analysis.
var (
	ErrEmptyCommand      = errors.New("shaping: command is empty")
	ErrInvalidSampleRate = errors.New("shaping: sample rate must be positive")
	ErrNoMotion          = errors.New("shaping: command does not move")
)

// SettlingBand is the fraction of the move within which a command counts
// as settled.
const SettlingBand = 0.02

// Metrics holds step metrics of a command. Times are in seconds, measured
// from the first sample, and resolved to whole samples.
type Metrics struct {
	Start        float64 // value before the command
	FinalValue   float64 // last sample
	Overshoot    float64 // peak excursion past FinalValue as a fraction of the move
	RiseTime     float64 // 10 % to 90 % of the move
	Delay        float64 // time to reach 50 % of the move
	SettlingTime float64 // time after which the command stays within SettlingBand
	PeakIndex    int     // sample with the largest progress
}

// Analyzer computes step metrics of sampled commands.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer for commands sampled at sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze measures a command that starts from rest at zero.
func (a *Analyzer) Analyze(command []float64) (Metrics, error) {
	return a.AnalyzeFrom(0, command)
}

// AnalyzeFrom measures a command that starts from rest at start. The last
// sample is taken as the final value, so the command should extend past
// the end of the shaped motion.
func (a *Analyzer) AnalyzeFrom(start float64, command []float64) (Metrics, error) {
	if len(command) == 0 {
		return Metrics{}, ErrEmptyCommand
	}
	if !(a.SampleRate > 0) {
		return Metrics{}, ErrInvalidSampleRate
	}

	final := command[len(command)-1]
	span := final - start
	if math.Abs(span) < 1e-12 {
		return Metrics{}, ErrNoMotion
	}

	m := Metrics{Start: start, FinalValue: final}
	t10, t50, t90 := -1, -1, -1
	peak := math.Inf(-1)
	lastOut := -1
	for i, x := range command {
		p := (x - start) / span
		if p > peak {
			peak = p
			m.PeakIndex = i
		}
		if t10 < 0 && p >= 0.1 {
			t10 = i
		}
		if t50 < 0 && p >= 0.5 {
			t50 = i
		}
		if t90 < 0 && p >= 0.9 {
			t90 = i
		}
		if math.Abs(p-1) > SettlingBand {
			lastOut = i
		}
	}

	m.Overshoot = math.Max(0, peak-1)
	m.RiseTime = float64(t90-t10) / a.SampleRate
	m.Delay = float64(t50) / a.SampleRate
	m.SettlingTime = float64(lastOut+1) / a.SampleRate
	return m, nil
}
