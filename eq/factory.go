package eq

import (
	"github.com/cwbudde/algo-eq/dsp/biquad"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/design"
)

// The coefficient factory maps a ChainSettings snapshot onto concrete
// biquad coefficient sets. Frequencies are additionally clamped below the
// Nyquist limit so a low sample rate cannot push a design into the region
// where the bilinear transform breaks down.

// PeakCoefficients designs the peaking band for the given settings.
func PeakCoefficients(s ChainSettings, sampleRate float64) biquad.Coefficients {
	return design.Peak(clampToNyquist(s.PeakFreq, sampleRate), s.PeakGainDB, s.PeakQ, sampleRate)
}

// LowCutCoefficients designs the low-cut Butterworth cascade. The result
// holds exactly s.LowCutSlope.Sections() coefficient sets.
func LowCutCoefficients(s ChainSettings, sampleRate float64) []biquad.Coefficients {
	return design.ButterworthHP(clampToNyquist(s.LowCutFreq, sampleRate), s.LowCutSlope.Order(), sampleRate)
}

// HighCutCoefficients designs the high-cut Butterworth cascade. The result
// holds exactly s.HighCutSlope.Sections() coefficient sets.
func HighCutCoefficients(s ChainSettings, sampleRate float64) []biquad.Coefficients {
	return design.ButterworthLP(clampToNyquist(s.HighCutFreq, sampleRate), s.HighCutSlope.Order(), sampleRate)
}

// LowCutCoefficientsInto is the allocation-free variant used on the audio
// thread. dst must hold maxCutSections entries; returns the section count.
func LowCutCoefficientsInto(dst []biquad.Coefficients, s ChainSettings, sampleRate float64) int {
	return design.ButterworthHPInto(dst, clampToNyquist(s.LowCutFreq, sampleRate), s.LowCutSlope.Order(), sampleRate)
}

// HighCutCoefficientsInto is the allocation-free variant used on the audio
// thread. dst must hold maxCutSections entries; returns the section count.
func HighCutCoefficientsInto(dst []biquad.Coefficients, s ChainSettings, sampleRate float64) int {
	return design.ButterworthLPInto(dst, clampToNyquist(s.HighCutFreq, sampleRate), s.HighCutSlope.Order(), sampleRate)
}

func clampToNyquist(freq, sampleRate float64) float64 {
	return core.Clamp(freq, MinFrequencyHz, sampleRate*0.49)
}
