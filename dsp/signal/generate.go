// Package signal provides streaming test-signal sources that fill sample
// blocks on demand, for feeding audio pipelines without precomputing the
// whole signal.
package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Source fills dst with the next len(dst) samples of a signal. Sources
// carry their own state, so repeated calls produce a continuous stream.
type Source interface {
	Fill(dst []float32)
}

// Sine is a fixed-frequency sine source.
type Sine struct {
	amplitude float64
	phase     float64
	step      float64
}

// NewSine creates a sine source at freqHz.
func NewSine(freqHz, amplitude, sampleRate float64) (*Sine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", sampleRate)
	}
	if freqHz <= 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in (0, nyquist): %f", freqHz)
	}

	return &Sine{
		amplitude: amplitude,
		step:      2 * math.Pi * freqHz / sampleRate,
	}, nil
}

// Fill writes the next samples, advancing the phase.
func (s *Sine) Fill(dst []float32) {
	for i := range dst {
		dst[i] = float32(s.amplitude * math.Sin(s.phase))

		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// WhiteNoise is a deterministic uniform white noise source in
// [-amplitude, amplitude].
type WhiteNoise struct {
	amplitude float64
	rng       *rand.Rand
}

// NoiseOption configures a WhiteNoise source.
type NoiseOption func(*WhiteNoise)

// WithSeed sets the deterministic random seed (default 1).
func WithSeed(seed int64) NoiseOption {
	return func(n *WhiteNoise) {
		n.rng = rand.New(rand.NewSource(seed))
	}
}

// NewWhiteNoise creates a white noise source.
func NewWhiteNoise(amplitude float64, opts ...NoiseOption) (*WhiteNoise, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	n := &WhiteNoise{
		amplitude: amplitude,
		rng:       rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}

	return n, nil
}

// Fill writes the next samples.
func (n *WhiteNoise) Fill(dst []float32) {
	for i := range dst {
		dst[i] = float32((n.rng.Float64()*2 - 1) * n.amplitude)
	}
}
