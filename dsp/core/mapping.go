package core

import "math"

// Lerp maps value from [srcMin, srcMax] linearly onto [dstMin, dstMax].
// Values outside the source range extrapolate.
func Lerp(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	if srcMax == srcMin {
		return dstMin
	}

	t := (value - srcMin) / (srcMax - srcMin)

	return dstMin + t*(dstMax-dstMin)
}

// MapToLog10 maps a normalized position in [0, 1] onto a logarithmic range
// [min, max]. Position 0 yields min, position 1 yields max, and equal
// fractions of the input cover equal octave spans of the output.
func MapToLog10(norm, min, max float64) float64 {
	if min <= 0 || max <= 0 {
		return min
	}

	lmin := math.Log10(min)
	lmax := math.Log10(max)

	return math.Pow(10, lmin+norm*(lmax-lmin))
}

// MapFromLog10 is the inverse of MapToLog10: it maps value in [min, max]
// onto a normalized logarithmic position in [0, 1].
func MapFromLog10(value, min, max float64) float64 {
	if value <= 0 || min <= 0 || max <= 0 || max == min {
		return 0
	}

	lmin := math.Log10(min)
	lmax := math.Log10(max)

	return (math.Log10(value) - lmin) / (lmax - lmin)
}
