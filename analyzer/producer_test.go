package analyzer

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/fifo"
)

func TestNewPathProducer_RejectsBadOrder(t *testing.T) {
	blocks := fifo.NewBlockRing(512)
	if _, err := NewPathProducer(blocks, 512, FFTOrder(5)); err == nil {
		t.Fatal("invalid order accepted")
	}
}

func TestPathProducer_EndToEnd(t *testing.T) {
	const (
		sampleRate = 44100.0
		blockSize  = 512
		freq       = 1000.0
	)

	blocks := fifo.NewBlockRing(blockSize)
	p, err := NewPathProducer(blocks, blockSize, Order2048)
	if err != nil {
		t.Fatal(err)
	}

	bounds := Rect{Width: 800, Height: 300}

	if _, ok := p.Path(); ok {
		t.Fatal("fresh producer reports a path")
	}

	// Feed enough blocks to fill the sliding window several times over.
	phase := 0.0
	step := 2 * math.Pi * freq / sampleRate
	for b := 0; b < 8; b++ {
		blk := make([]float32, blockSize)
		for i := range blk {
			blk[i] = float32(math.Sin(phase))
			phase += step
		}
		if !blocks.Push(blk) {
			t.Fatalf("block %d dropped", b)
		}
	}

	p.Process(bounds, sampleRate)

	path, ok := p.Path()
	if !ok {
		t.Fatal("no path after Process")
	}
	if path.Len() < 2 {
		t.Fatalf("path too short: %d points", path.Len())
	}

	// The tone shows as a pronounced dip (y grows downward) well inside
	// the render area.
	minY := path.Y[0]
	minIdx := 0
	for i, y := range path.Y {
		if y < minY {
			minY = y
			minIdx = i
		}
	}
	if float64(minY) > bounds.Height/2 {
		t.Errorf("spectral peak too shallow: y=%v of %v", minY, bounds.Height)
	}

	// Its x position matches the tone's log-frequency location.
	wantNorm := math.Log10(freq/20) / math.Log10(20000.0/20)
	wantX := wantNorm * bounds.Width
	if math.Abs(float64(path.X[minIdx])-wantX) > bounds.Width*0.05 {
		t.Errorf("peak x: got %v, want ~%.0f", path.X[minIdx], wantX)
	}

	if blocks.Available() != 0 {
		t.Errorf("%d blocks left undrained", blocks.Available())
	}
}

func TestPathProducer_LatestWins(t *testing.T) {
	const blockSize = 256

	blocks := fifo.NewBlockRing(blockSize)
	p, err := NewPathProducer(blocks, blockSize, Order2048)
	if err != nil {
		t.Fatal(err)
	}

	bounds := Rect{Width: 100, Height: 100}

	// Many silent blocks produce many interim spectra; after Process only
	// one path remains exposed.
	for b := 0; b < 20; b++ {
		blocks.Push(make([]float32, blockSize))
	}
	p.Process(bounds, 44100)

	if _, ok := p.Path(); !ok {
		t.Fatal("no path exposed")
	}
	if p.pathGen.Available() != 0 {
		t.Errorf("%d paths left queued", p.pathGen.Available())
	}
}

func TestPathProducer_ChangeOrder(t *testing.T) {
	blocks := fifo.NewBlockRing(512)
	p, err := NewPathProducer(blocks, 512, Order2048)
	if err != nil {
		t.Fatal(err)
	}

	blocks.Push(make([]float32, 512))
	p.Process(Rect{Width: 100, Height: 100}, 44100)
	if _, ok := p.Path(); !ok {
		t.Fatal("setup produced no path")
	}

	if err := p.ChangeOrder(Order4096); err != nil {
		t.Fatal(err)
	}

	if p.FFTSize() != 4096 {
		t.Errorf("FFTSize after change: got %d, want 4096", p.FFTSize())
	}
	if _, ok := p.Path(); ok {
		t.Error("stale path survived order change")
	}

	if err := p.ChangeOrder(FFTOrder(3)); err == nil {
		t.Error("invalid order accepted")
	}
}

func TestPathProducer_OversizedBlock(t *testing.T) {
	// A block larger than the FFT window must not break the sliding
	// window; only its tail is analyzed.
	const blockSize = 4096 // twice the Order2048 window

	blocks := fifo.NewBlockRing(blockSize)
	p, err := NewPathProducer(blocks, blockSize, Order2048)
	if err != nil {
		t.Fatal(err)
	}

	blocks.Push(make([]float32, blockSize))
	p.Process(Rect{Width: 100, Height: 100}, 44100)

	if _, ok := p.Path(); !ok {
		t.Fatal("oversized block produced no path")
	}
}
