// Command eqplay plays a test signal through the three-band equalizer and
// reports the analyzed spectrum while it runs.
//
// Usage:
//
//	eqplay [flags]
//
// A sine or white noise source is filtered in real time and sent to the
// default audio device. Once per second the dominant spectral peak of each
// channel and the equalizer response at that frequency are printed.
//
// Examples:
//
//	eqplay -source sine -freq 440 -peak-freq 440 -peak-gain -12
//	eqplay -source noise -low-cut 200 -low-slope 48 -duration 5s
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/eq"
)

func main() {
	sampleRate := flag.Int("samplerate", 44100, "sample rate in Hz")
	sourceName := flag.String("source", "noise", "test signal: noise or sine")
	sineFreq := flag.Float64("freq", 440, "sine source frequency in Hz")
	amplitude := flag.Float64("amp", 0.25, "source amplitude (linear)")
	duration := flag.Duration("duration", 10*time.Second, "playback duration")
	fftOrder := flag.Int("fft-order", int(analyzer.Order2048), "analysis FFT order (11, 12, 13)")

	peakFreq := flag.Float64("peak-freq", eq.DefaultPeakFreq, "peak band center frequency in Hz")
	peakGain := flag.Float64("peak-gain", eq.DefaultPeakGainDB, "peak band gain in dB")
	peakQ := flag.Float64("peak-q", eq.DefaultPeakQ, "peak band quality factor")
	lowCut := flag.Float64("low-cut", eq.DefaultLowCutFreq, "low-cut corner frequency in Hz")
	highCut := flag.Float64("high-cut", eq.DefaultHighCutFreq, "high-cut corner frequency in Hz")
	lowSlope := flag.Int("low-slope", 12, "low-cut slope in dB/Oct (12, 24, 36, 48)")
	highSlope := flag.Int("high-slope", 12, "high-cut slope in dB/Oct (12, 24, 36, 48)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal through the equalizer and reports the spectrum.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqplay -source sine -freq 440 -peak-freq 440 -peak-gain -12\n")
		fmt.Fprintf(os.Stderr, "  eqplay -source noise -low-cut 200 -low-slope 48 -duration 5s\n")
	}
	flag.Parse()

	if err := run(config{
		sampleRate: *sampleRate,
		sourceName: *sourceName,
		sineFreq:   *sineFreq,
		amplitude:  *amplitude,
		duration:   *duration,
		fftOrder:   analyzer.FFTOrder(*fftOrder),
		peakFreq:   *peakFreq,
		peakGain:   *peakGain,
		peakQ:      *peakQ,
		lowCut:     *lowCut,
		highCut:    *highCut,
		lowSlope:   *lowSlope,
		highSlope:  *highSlope,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	sampleRate int
	sourceName string
	sineFreq   float64
	amplitude  float64
	duration   time.Duration
	fftOrder   analyzer.FFTOrder

	peakFreq, peakGain, peakQ float64
	lowCut, highCut           float64
	lowSlope, highSlope       int
}

func run(cfg config) error {
	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	params := eq.NewParams()
	params.SetPeakFreq(cfg.peakFreq)
	params.SetPeakGainDB(cfg.peakGain)
	params.SetPeakQ(cfg.peakQ)
	params.SetLowCutFreq(cfg.lowCut)
	params.SetHighCutFreq(cfg.highCut)

	lowCutSlope, err := slopeFromDBPerOct(cfg.lowSlope)
	if err != nil {
		return fmt.Errorf("low-slope: %w", err)
	}
	params.SetLowCutSlope(lowCutSlope)

	highCutSlope, err := slopeFromDBPerOct(cfg.highSlope)
	if err != nil {
		return fmt.Errorf("high-slope: %w", err)
	}
	params.SetHighCutSlope(highCutSlope)

	engine := eq.NewEngine(params)
	if err := engine.Prepare(float64(cfg.sampleRate), maxHostBlock); err != nil {
		return err
	}

	leftProducer, err := analyzer.NewPathProducer(engine.LeftBlocks(), engine.AnalysisBlockSize(), cfg.fftOrder)
	if err != nil {
		return err
	}

	rightProducer, err := analyzer.NewPathProducer(engine.RightBlocks(), engine.AnalysisBlockSize(), cfg.fftOrder)
	if err != nil {
		return err
	}

	curve := analyzer.NewResponseCurve()
	curve.Update(params.Settings(), float64(cfg.sampleRate))

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio context: %w", err)
	}
	<-ready

	stream := newStream(engine, source)
	player := ctx.NewPlayer(stream)
	player.Play()
	defer player.Close()

	fmt.Printf("playing %s for %s at %d Hz\n", cfg.sourceName, cfg.duration, cfg.sampleRate)

	pump(cfg, leftProducer, rightProducer, curve, params)

	return nil
}

// pump drives the analysis side at display rate until the configured
// duration elapses, printing a spectrum summary once per second.
func pump(cfg config, left, right *analyzer.PathProducer, curve *analyzer.ResponseCurve, params *eq.Params) {
	bounds := analyzer.Rect{Width: 800, Height: 200}
	sampleRate := float64(cfg.sampleRate)

	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	report := time.NewTicker(time.Second)
	defer report.Stop()

	deadline := time.After(cfg.duration)

	for {
		select {
		case <-frame.C:
			if params.Changed() {
				curve.Update(params.Settings(), sampleRate)
			}

			left.Process(bounds, sampleRate)
			right.Process(bounds, sampleRate)

		case <-report.C:
			printSummary("L", left, curve, sampleRate)
			printSummary("R", right, curve, sampleRate)

		case <-deadline:
			return
		}
	}
}

func printSummary(label string, producer *analyzer.PathProducer, curve *analyzer.ResponseCurve, sampleRate float64) {
	path, ok := producer.Path()
	if !ok || path.Len() == 0 {
		fmt.Printf("%s: no spectrum yet\n", label)
		return
	}

	// The path's y axis grows downward, so the dominant peak is the
	// minimum. Recover its frequency from the x position.
	minY := float32(math.Inf(1))
	minIdx := 0
	for i, y := range path.Y {
		if y < minY {
			minY = y
			minIdx = i
		}
	}

	// Point 0 is bin 0; point i covers bin 2i-1 at the generator's stride.
	binWidth := sampleRate / float64(producer.FFTSize())
	peakFreq := 0.0
	if minIdx > 0 {
		peakFreq = float64(2*minIdx-1) * binWidth
	}

	fmt.Printf("%s: peak near %.0f Hz, eq response there %+.2f dB\n",
		label, peakFreq, curve.MagnitudeDBAt(math.Max(peakFreq, 20)))
}

// maxHostBlock is the block size requested from the stream callback.
const maxHostBlock = 512

// stream adapts the engine to oto's pull model: each Read generates the
// next source frames, filters them in place and encodes interleaved
// little-endian float32 samples.
type stream struct {
	engine *eq.Engine
	source signal.Source

	left  []float32
	right []float32
}

func newStream(engine *eq.Engine, source signal.Source) *stream {
	return &stream{
		engine: engine,
		source: source,
		left:   make([]float32, maxHostBlock),
		right:  make([]float32, maxHostBlock),
	}
}

func (s *stream) Read(p []byte) (int, error) {
	const bytesPerFrame = 8 // two channels, four bytes each

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	written := 0
	for frames > 0 {
		n := frames
		if n > maxHostBlock {
			n = maxHostBlock
		}

		left := s.left[:n]
		right := s.right[:n]

		s.source.Fill(left)
		copy(right, left)

		s.engine.Process(left, right)

		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(p[written:], math.Float32bits(left[i]))
			binary.LittleEndian.PutUint32(p[written+4:], math.Float32bits(right[i]))
			written += bytesPerFrame
		}

		frames -= n
	}

	return written, nil
}

func newSource(cfg config) (signal.Source, error) {
	switch cfg.sourceName {
	case "sine":
		return signal.NewSine(cfg.sineFreq, cfg.amplitude, float64(cfg.sampleRate))
	case "noise":
		return signal.NewWhiteNoise(cfg.amplitude)
	}
	return nil, fmt.Errorf("unknown source %q (want noise or sine)", cfg.sourceName)
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
