// Package analyzer implements the non-real-time spectrum pipeline: FFT
// magnitude extraction from collected audio blocks, render-path generation
// for the spectrum display, and the combined filter response curve.
package analyzer

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fifo"
	"github.com/cwbudde/algo-eq/dsp/window"
)

// FFTOrder selects the analysis FFT size as a power of two.
type FFTOrder int

const (
	Order2048 FFTOrder = 11
	Order4096 FFTOrder = 12
	Order8192 FFTOrder = 13
)

// Size returns the FFT point count, 2^order.
func (o FFTOrder) Size() int {
	return 1 << o
}

func (o FFTOrder) valid() bool {
	return o >= Order2048 && o <= Order8192
}

// DefaultFloorDB is the dB floor used for spectrum rendering; magnitudes
// at or below it are drawn at the bottom edge.
const DefaultFloorDB = -48.0

// FFTDataGenerator turns fixed-size mono sample windows into dB-scaled
// magnitude spectra. It owns one FFT plan and one Blackman-Harris window,
// both sized to the configured order and re-created when the order
// changes. Finished spectra are queued in an internal ring for the path
// generator to drain.
type FFTDataGenerator struct {
	order FFTOrder
	plan  *algofft.Plan[complex128]
	win   []float64

	windowed []float64
	in, out  []complex128
	re, im   []float64
	mag      []float64
	dbData   []float32

	ring *fifo.Ring[[]float32]
}

// NewFFTDataGenerator creates a generator for the given order.
func NewFFTDataGenerator(order FFTOrder) (*FFTDataGenerator, error) {
	g := &FFTDataGenerator{}
	if err := g.ChangeOrder(order); err != nil {
		return nil, err
	}

	return g, nil
}

// ChangeOrder re-sizes the generator: new FFT plan, new window, fresh
// buffers and an empty output ring. Queued spectra of the old size are
// discarded.
func (g *FFTDataGenerator) ChangeOrder(order FFTOrder) error {
	if !order.valid() {
		return fmt.Errorf("analyzer: unsupported FFT order: %d", order)
	}

	size := order.Size()

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("analyzer: fft plan: %w", err)
	}

	numBins := size / 2

	g.order = order
	g.plan = plan
	g.win = window.Generate(window.TypeBlackmanHarris4Term, size, window.WithPeriodic())
	g.windowed = make([]float64, size)
	g.in = make([]complex128, size)
	g.out = make([]complex128, size)
	g.re = make([]float64, numBins)
	g.im = make([]float64, numBins)
	g.mag = make([]float64, numBins)
	g.dbData = make([]float32, numBins)
	g.ring = fifo.NewBlockRing(numBins)

	return nil
}

// Order returns the current FFT order.
func (g *FFTDataGenerator) Order() FFTOrder {
	return g.order
}

// FFTSize returns the current FFT point count.
func (g *FFTDataGenerator) FFTSize() int {
	return g.order.Size()
}

// NumBins returns the number of magnitude bins per produced spectrum.
func (g *FFTDataGenerator) NumBins() int {
	return g.order.Size() / 2
}

// ProduceFFTData windows the first FFTSize samples of mono, runs the
// forward transform, and queues the per-bin magnitudes as dB values
// floored at floorDB. Non-finite intermediate values are zeroed so the
// output never carries NaN or Inf. Allocation-free in steady state.
func (g *FFTDataGenerator) ProduceFFTData(mono []float32, floorDB float64) {
	size := g.FFTSize()
	if len(mono) < size {
		return
	}

	window.Apply(g.windowed, mono[:size], g.win)
	for i, v := range g.windowed {
		g.in[i] = complex(v, 0)
	}

	if err := g.plan.Forward(g.out, g.in); err != nil {
		return
	}

	numBins := len(g.mag)
	for i := 0; i < numBins; i++ {
		g.re[i] = real(g.out[i])
		g.im[i] = imag(g.out[i])
	}

	vecmath.Magnitude(g.mag, g.re, g.im)

	norm := float64(numBins)
	for i, v := range g.mag {
		v /= norm
		if !core.IsFinite(v) {
			v = 0
		}

		g.dbData[i] = float32(core.LinearToDBWithFloor(v, floorDB))
	}

	g.ring.Push(g.dbData)
}

// Available returns the number of queued spectra.
func (g *FFTDataGenerator) Available() int {
	return g.ring.Available()
}

// PullFFTData copies the oldest queued spectrum into dst, which must hold
// NumBins values.
func (g *FFTDataGenerator) PullFFTData(dst []float32) bool {
	_, ok := g.ring.Pull(dst)
	return ok
}
