package eq

import "github.com/cwbudde/algo-eq/dsp/biquad"

// MaxCutSections is the number of section slots in each cut stage; a
// 48 dB/octave slope uses all four.
const MaxCutSections = 4

// FilterChain is the mono filter cascade: low-cut sections, one peak
// section, high-cut sections, processed in that order. Sections beyond the
// active slope are bypassed, not zeroed, so a slope change only has to flip
// bypass flags and the remaining sections keep their delay state.
type FilterChain struct {
	lowCut         [MaxCutSections]biquad.Section
	lowCutBypassed [MaxCutSections]bool

	peak         biquad.Section
	peakBypassed bool

	highCut         [MaxCutSections]biquad.Section
	highCutBypassed [MaxCutSections]bool
}

// NewFilterChain returns a chain with every section bypassed. Coefficient
// updates activate the sections they configure.
func NewFilterChain() *FilterChain {
	c := &FilterChain{}
	c.bypassAll()

	return c
}

func (c *FilterChain) bypassAll() {
	for i := range c.lowCut {
		c.lowCutBypassed[i] = true
		c.highCutBypassed[i] = true
	}

	c.peakBypassed = true
}

// UpdatePeak replaces the peak section's coefficients wholesale and
// activates it. The delay state is preserved across the swap.
func (c *FilterChain) UpdatePeak(coeffs biquad.Coefficients) {
	c.peak.Coefficients = coeffs
	c.peakBypassed = false
}

// UpdateLowCut reconfigures the low-cut stage for the given slope.
// All four sections are bypassed first; coefficient set i is then assigned
// to section i before that section is re-activated, so an active section
// never runs with a stale coefficient/bypass combination.
func (c *FilterChain) UpdateLowCut(coeffs []biquad.Coefficients, slope Slope) {
	updateCutStage(&c.lowCut, &c.lowCutBypassed, coeffs, slope)
}

// UpdateHighCut reconfigures the high-cut stage; see UpdateLowCut.
func (c *FilterChain) UpdateHighCut(coeffs []biquad.Coefficients, slope Slope) {
	updateCutStage(&c.highCut, &c.highCutBypassed, coeffs, slope)
}

func updateCutStage(sections *[MaxCutSections]biquad.Section, bypassed *[MaxCutSections]bool, coeffs []biquad.Coefficients, slope Slope) {
	for i := range sections {
		bypassed[i] = true
	}

	active := clampSlope(slope).Sections()
	if active > len(coeffs) {
		active = len(coeffs)
	}

	for i := 0; i < active; i++ {
		sections[i].Coefficients = coeffs[i]
		bypassed[i] = false
	}
}

// Process filters buf in place through all active sections in cascade
// order. Bypassed sections cost nothing. Zero-alloc.
func (c *FilterChain) Process(buf []float32) {
	for i := range c.lowCut {
		if !c.lowCutBypassed[i] {
			c.lowCut[i].ProcessBlock(buf)
		}
	}

	if !c.peakBypassed {
		c.peak.ProcessBlock(buf)
	}

	for i := range c.highCut {
		if !c.highCutBypassed[i] {
			c.highCut[i].ProcessBlock(buf)
		}
	}
}

// Reset clears the delay state of every section, active or not.
func (c *FilterChain) Reset() {
	for i := range c.lowCut {
		c.lowCut[i].Reset()
		c.highCut[i].Reset()
	}

	c.peak.Reset()
}

// ActiveLowCutSections returns how many low-cut sections are not bypassed.
func (c *FilterChain) ActiveLowCutSections() int {
	return countActive(&c.lowCutBypassed)
}

// ActiveHighCutSections returns how many high-cut sections are not bypassed.
func (c *FilterChain) ActiveHighCutSections() int {
	return countActive(&c.highCutBypassed)
}

func countActive(bypassed *[MaxCutSections]bool) int {
	n := 0

	for _, b := range bypassed {
		if !b {
			n++
		}
	}

	return n
}

// MagnitudeAt evaluates the combined magnitude response of all active
// sections at freqHz as the product of the per-section magnitudes.
// Pure function of the current coefficients.
func (c *FilterChain) MagnitudeAt(freqHz, sampleRate float64) float64 {
	mag := 1.0

	if !c.peakBypassed {
		mag *= c.peak.Magnitude(freqHz, sampleRate)
	}

	for i := range c.lowCut {
		if !c.lowCutBypassed[i] {
			mag *= c.lowCut[i].Magnitude(freqHz, sampleRate)
		}

		if !c.highCutBypassed[i] {
			mag *= c.highCut[i].Magnitude(freqHz, sampleRate)
		}
	}

	return mag
}
