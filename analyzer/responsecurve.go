package analyzer

import (
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/eq"
)

// ResponseCurve evaluates the combined magnitude response of the current
// filter settings for the display overlay. It owns a mono reference chain
// rebuilt from the coefficient factory on Update; evaluation is a pure
// function of those coefficients, independent of the live audio stream.
//
// The intended driver is the parameter-change flag: the UI timer calls
// Update only when Params.Changed reports true.
type ResponseCurve struct {
	chain      *eq.FilterChain
	sampleRate float64
}

// NewResponseCurve returns a curve with an all-bypassed reference chain.
// Update must be called before evaluation yields a meaningful response.
func NewResponseCurve() *ResponseCurve {
	return &ResponseCurve{chain: eq.NewFilterChain()}
}

// Update rebuilds the reference chain from settings.
func (r *ResponseCurve) Update(s eq.ChainSettings, sampleRate float64) {
	r.sampleRate = sampleRate

	r.chain.UpdatePeak(eq.PeakCoefficients(s, sampleRate))
	r.chain.UpdateLowCut(eq.LowCutCoefficients(s, sampleRate), s.LowCutSlope)
	r.chain.UpdateHighCut(eq.HighCutCoefficients(s, sampleRate), s.HighCutSlope)
}

// MagnitudeDBAt returns the combined response in dB at freqHz.
func (r *ResponseCurve) MagnitudeDBAt(freqHz float64) float64 {
	return core.LinearToDB(r.chain.MagnitudeAt(freqHz, r.sampleRate))
}

// Magnitudes evaluates the response in dB for each of width horizontal
// pixels, pixel i covering the log-spaced frequency at position i/width in
// [20, 20000] Hz.
func (r *ResponseCurve) Magnitudes(width int) []float64 {
	if width <= 0 {
		return nil
	}

	out := make([]float64, width)
	r.MagnitudesInto(out)

	return out
}

// MagnitudesInto fills dst with the per-pixel response in dB; the sweep
// width is len(dst).
func (r *ResponseCurve) MagnitudesInto(dst []float64) {
	width := len(dst)

	for i := range dst {
		freq := core.MapToLog10(float64(i)/float64(width), 20, 20000)
		dst[i] = r.MagnitudeDBAt(freq)
	}
}
