// Package eq implements the real-time signal path of a three-band
// parametric equalizer: a low-cut stage of up to four cascaded biquad
// sections, one peaking section, and a high-cut stage of up to four
// sections, applied independently to the left and right channels.
package eq

import "fmt"

// Slope is the steepness of a cut filter in ordinal form. Ordinal n maps
// to (12 + 12n) dB/octave, realized by n+1 cascaded second-order sections.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48

	numSlopes = 4
)

// Sections returns the number of active biquad sections for the slope.
func (s Slope) Sections() int {
	return int(s) + 1
}

// Order returns the resulting filter order (two per section).
func (s Slope) Order() int {
	return 2 * s.Sections()
}

// DBPerOctave returns the nominal steepness in dB/octave.
func (s Slope) DBPerOctave() int {
	return 12 + 12*int(s)
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/Oct", s.DBPerOctave())
}

// ChainSettings is an immutable snapshot of the filter parameters,
// recomputed from the live parameter store once per processed block.
type ChainSettings struct {
	PeakFreq   float64 // Hz
	PeakGainDB float64
	PeakQ      float64

	LowCutFreq  float64 // Hz
	HighCutFreq float64 // Hz

	LowCutSlope  Slope
	HighCutSlope Slope
}
