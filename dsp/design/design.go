// Package design computes biquad coefficients for the equalizer's filter
// types: RBJ peaking, lowpass and highpass prototypes, and high-order
// Butterworth cut filters decomposed into cascaded second-order sections.
//
// All designs degrade to safe pass-through coefficients when given
// out-of-range parameters instead of propagating NaN into a live filter.
package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Passthrough()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Passthrough()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Peak designs a peaking-EQ biquad with gain in dB using the standard RBJ
// formula: magnitude at the center frequency equals the linear gain, unity
// far from center, bandwidth controlled by q.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Passthrough()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// ButterworthLP designs a lowpass Butterworth cascade of order/2 biquad
// sections. Order must be even and positive; odd orders are rounded up.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	dst := make([]biquad.Coefficients, cascadeSections(order))
	n := ButterworthLPInto(dst, freq, order, sampleRate)

	return dst[:n]
}

// ButterworthHP designs a highpass Butterworth cascade of order/2 biquad
// sections. Order must be even and positive; odd orders are rounded up.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	dst := make([]biquad.Coefficients, cascadeSections(order))
	n := ButterworthHPInto(dst, freq, order, sampleRate)

	return dst[:n]
}

// ButterworthLPInto writes a lowpass Butterworth cascade into dst and
// returns the section count. dst must hold at least order/2 sections.
// Allocation-free, safe to call from the audio thread.
func ButterworthLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthCascadeInto(dst, freq, order, sampleRate, Lowpass)
}

// ButterworthHPInto writes a highpass Butterworth cascade into dst and
// returns the section count. dst must hold at least order/2 sections.
// Allocation-free, safe to call from the audio thread.
func ButterworthHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthCascadeInto(dst, freq, order, sampleRate, Highpass)
}

func cascadeSections(order int) int {
	if order <= 0 {
		return 0
	}

	return (order + 1) / 2
}

func butterworthCascadeInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64, proto func(freq, q, sampleRate float64) biquad.Coefficients) int {
	if order <= 0 {
		return 0
	}

	if order%2 != 0 {
		order++
	}

	n2 := order / 2
	if n2 > len(dst) {
		n2 = len(dst)
	}

	for k := 0; k < n2; k++ {
		i := n2 - 1 - k
		dst[k] = proto(freq, butterworthQ(order, i), sampleRate)
	}

	return n2
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Passthrough()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
