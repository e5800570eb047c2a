package eq

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/biquad"
	"github.com/cwbudde/algo-eq/dsp/fifo"
)

// Engine is the stereo equalizer: two independent FilterChains fed from a
// shared parameter store, plus one sample collector per channel tapping the
// incoming signal for the spectrum analyzer.
//
// Process is the real-time entry point. It recomputes the filter
// coefficients from the current parameters on every call, whether or not
// anything changed; the redundant work buys a lock-free parameter path with
// no dirty-flag handshake on the audio side.
type Engine struct {
	params *Params

	left  FilterChain
	right FilterChain

	leftTap  SampleCollector
	rightTap SampleCollector

	cutScratch [MaxCutSections]biquad.Coefficients

	sampleRate        float64
	maxBlockSize      int
	analysisBlockSize int

	prepared bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithAnalysisBlockSize overrides the block size handed to the spectrum
// collectors. Values < 1 keep the default.
func WithAnalysisBlockSize(n int) EngineOption {
	return func(e *Engine) {
		if n >= 1 {
			e.analysisBlockSize = n
		}
	}
}

// NewEngine creates an engine reading from params. Prepare must be called
// before the first Process.
func NewEngine(params *Params, opts ...EngineOption) *Engine {
	e := &Engine{
		params:            params,
		analysisBlockSize: DefaultAnalysisBlockSize,
	}
	e.left.bypassAll()
	e.right.bypassAll()

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// Prepare configures the engine for the given sample rate and maximum host
// block size. Idempotent: calling it again resets all filter state and
// discards undrained analysis blocks, leaving no stale coefficients behind.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("eq: sample rate must be > 0: %f", sampleRate)
	}

	if maxBlockSize <= 0 {
		return fmt.Errorf("eq: max block size must be > 0: %d", maxBlockSize)
	}

	e.sampleRate = sampleRate
	e.maxBlockSize = maxBlockSize

	e.left.Reset()
	e.right.Reset()

	e.leftTap.Prepare(e.analysisBlockSize)
	e.rightTap.Prepare(e.analysisBlockSize)

	e.updateFilters(e.params.Settings())
	e.prepared = true

	return nil
}

// Process filters one stereo block in place. The two channels run through
// independent chains with no cross-channel coupling. A copy of the raw
// input is fed to the per-channel collectors for the analyzer before
// filtering. No locks, no allocation.
//
// Calling Process before Prepare is a programming error and panics.
func (e *Engine) Process(left, right []float32) {
	if !e.prepared {
		panic("eq: Engine.Process called before Prepare")
	}

	e.updateFilters(e.params.Settings())

	e.leftTap.Update(left)
	e.rightTap.Update(right)

	e.left.Process(left)
	e.right.Process(right)
}

func (e *Engine) updateFilters(s ChainSettings) {
	peak := PeakCoefficients(s, e.sampleRate)
	e.left.UpdatePeak(peak)
	e.right.UpdatePeak(peak)

	n := LowCutCoefficientsInto(e.cutScratch[:], s, e.sampleRate)
	e.left.UpdateLowCut(e.cutScratch[:n], s.LowCutSlope)
	e.right.UpdateLowCut(e.cutScratch[:n], s.LowCutSlope)

	n = HighCutCoefficientsInto(e.cutScratch[:], s, e.sampleRate)
	e.left.UpdateHighCut(e.cutScratch[:n], s.HighCutSlope)
	e.right.UpdateHighCut(e.cutScratch[:n], s.HighCutSlope)
}

// Params returns the shared parameter store.
func (e *Engine) Params() *Params {
	return e.params
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// AnalysisBlockSize returns the block size the collectors produce.
func (e *Engine) AnalysisBlockSize() int {
	return e.analysisBlockSize
}

// LeftBlocks exposes the left channel's analysis block ring. Valid after
// Prepare.
func (e *Engine) LeftBlocks() *fifo.Ring[[]float32] {
	return e.leftTap.Blocks()
}

// RightBlocks exposes the right channel's analysis block ring. Valid after
// Prepare.
func (e *Engine) RightBlocks() *fifo.Ring[[]float32] {
	return e.rightTap.Blocks()
}

// LeftChain exposes the left filter chain for response inspection.
func (e *Engine) LeftChain() *FilterChain {
	return &e.left
}

// RightChain exposes the right filter chain for response inspection.
func (e *Engine) RightChain() *FilterChain {
	return &e.right
}
