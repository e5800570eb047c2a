// Command eqresponse prints the combined magnitude response of a
// three-band equalizer configuration.
//
// Usage:
//
//	eqresponse [flags]
//
// The response is evaluated on a logarithmic frequency sweep from 20 Hz
// to 20 kHz and printed either as a table or as an ASCII chart.
//
// Examples:
//
//	eqresponse -peak-gain 6
//	eqresponse -low-cut 120 -low-slope 24 -chart
//	eqresponse -peak-freq 2000 -peak-q 4 -width 48
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/eq"
)

func main() {
	sampleRate := flag.Float64("samplerate", 44100, "sample rate in Hz")
	width := flag.Int("width", 32, "number of sweep points from 20 Hz to 20 kHz")
	chart := flag.Bool("chart", false, "render an ASCII chart instead of a table")

	peakFreq := flag.Float64("peak-freq", eq.DefaultPeakFreq, "peak band center frequency in Hz")
	peakGain := flag.Float64("peak-gain", eq.DefaultPeakGainDB, "peak band gain in dB")
	peakQ := flag.Float64("peak-q", eq.DefaultPeakQ, "peak band quality factor")
	lowCut := flag.Float64("low-cut", eq.DefaultLowCutFreq, "low-cut corner frequency in Hz")
	highCut := flag.Float64("high-cut", eq.DefaultHighCutFreq, "high-cut corner frequency in Hz")
	lowSlope := flag.Int("low-slope", 12, "low-cut slope in dB/Oct (12, 24, 36, 48)")
	highSlope := flag.Int("high-slope", 12, "high-cut slope in dB/Oct (12, 24, 36, 48)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqresponse [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the combined magnitude response of a three-band equalizer.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqresponse -peak-gain 6\n")
		fmt.Fprintf(os.Stderr, "  eqresponse -low-cut 120 -low-slope 24 -chart\n")
	}
	flag.Parse()

	if *width < 2 {
		fmt.Fprintf(os.Stderr, "error: width must be >= 2\n")
		os.Exit(1)
	}

	lowCutSlope, err := slopeFromDBPerOct(*lowSlope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: low-slope: %v\n", err)
		os.Exit(1)
	}

	highCutSlope, err := slopeFromDBPerOct(*highSlope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: high-slope: %v\n", err)
		os.Exit(1)
	}

	params := eq.NewParams()
	params.SetPeakFreq(*peakFreq)
	params.SetPeakGainDB(*peakGain)
	params.SetPeakQ(*peakQ)
	params.SetLowCutFreq(*lowCut)
	params.SetHighCutFreq(*highCut)
	params.SetLowCutSlope(lowCutSlope)
	params.SetHighCutSlope(highCutSlope)

	settings := params.Settings()

	curve := analyzer.NewResponseCurve()
	curve.Update(settings, *sampleRate)

	mags := curve.Magnitudes(*width)

	printSettings(settings)

	if *chart {
		printChart(mags, *width)
	} else {
		printTable(mags, *width)
	}
}

func slopeFromDBPerOct(db int) (eq.Slope, error) {
	switch db {
	case 12:
		return eq.Slope12, nil
	case 24:
		return eq.Slope24, nil
	case 36:
		return eq.Slope36, nil
	case 48:
		return eq.Slope48, nil
	}
	return 0, fmt.Errorf("unsupported slope %d dB/Oct", db)
}

func sweepFreq(i, width int) float64 {
	return core.MapToLog10(float64(i)/float64(width), 20, 20000)
}

func printSettings(s eq.ChainSettings) {
	fmt.Printf("Peak: %.1f Hz, %+.1f dB, Q %.2f\n", s.PeakFreq, s.PeakGainDB, s.PeakQ)
	fmt.Printf("LowCut: %.1f Hz @ %s\n", s.LowCutFreq, s.LowCutSlope)
	fmt.Printf("HighCut: %.1f Hz @ %s\n\n", s.HighCutFreq, s.HighCutSlope)
}

func printTable(mags []float64, width int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tResponse [dB]\n")
	fmt.Fprintf(tw, "--------------\t-------------\n")
	for i, db := range mags {
		fmt.Fprintf(tw, "%.1f\t%+.2f\n", sweepFreq(i, width), db)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// printChart draws one row per sweep point, each a bar scaled to the
// observed dB extremes with a marker at the 0 dB column.
func printChart(mags []float64, width int) {
	const cols = 61

	minDB, maxDB := -6.0, 6.0
	for _, db := range mags {
		minDB = math.Min(minDB, db)
		maxDB = math.Max(maxDB, db)
	}

	for i, db := range mags {
		pos := int(math.Round(core.Lerp(db, minDB, maxDB, 0, cols-1)))
		pos = int(core.Clamp(float64(pos), 0, cols-1))

		zero := int(math.Round(core.Lerp(0, minDB, maxDB, 0, cols-1)))

		row := []byte(strings.Repeat(" ", cols))
		row[zero] = '|'
		row[pos] = '*'

		fmt.Printf("%8.1f Hz  %s  %+.2f dB\n", sweepFreq(i, width), string(row), db)
	}
}
