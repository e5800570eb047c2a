package analyzer

import "github.com/cwbudde/algo-eq/dsp/fifo"

// PathProducer is the non-real-time side of one channel's spectrum
// pipeline. Pumped from a timer (typically ~60 Hz), each Process call
// drains everything available: collected audio blocks into a sliding
// analysis window, finished spectra into render paths, and finished paths
// into the single latest path exposed to the renderer. Skipped or slow
// frames only make the display coarser, never incorrect.
type PathProducer struct {
	blocks *fifo.Ring[[]float32]

	gen     *FFTDataGenerator
	pathGen *PathGenerator

	mono      []float32
	incoming  []float32
	dbScratch []float32

	latest  Path
	hasPath bool

	floorDB float64
}

// PathProducerOption configures a PathProducer.
type PathProducerOption func(*PathProducer)

// WithFloorDB overrides the rendering dB floor (default -48 dB).
func WithFloorDB(db float64) PathProducerOption {
	return func(p *PathProducer) {
		if db < 0 {
			p.floorDB = db
		}
	}
}

// NewPathProducer wires a producer to one channel's collected block ring.
// blockSize must match the collector's analysis block size.
func NewPathProducer(blocks *fifo.Ring[[]float32], blockSize int, order FFTOrder, opts ...PathProducerOption) (*PathProducer, error) {
	gen, err := NewFFTDataGenerator(order)
	if err != nil {
		return nil, err
	}

	p := &PathProducer{
		blocks:   blocks,
		gen:      gen,
		incoming: make([]float32, blockSize),
		floorDB:  DefaultFloorDB,
	}
	p.sizeToOrder()

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p, nil
}

func (p *PathProducer) sizeToOrder() {
	numBins := p.gen.NumBins()

	p.mono = make([]float32, p.gen.FFTSize())
	p.dbScratch = make([]float32, numBins)
	p.pathGen = NewPathGenerator(numBins/pathResolution + 1)
	p.latest = newPath(numBins/pathResolution + 1)
	p.hasPath = false
}

// ChangeOrder switches the FFT resolution, resetting the sliding window
// and dropping any path built at the old size.
func (p *PathProducer) ChangeOrder(order FFTOrder) error {
	if err := p.gen.ChangeOrder(order); err != nil {
		return err
	}

	p.sizeToOrder()

	return nil
}

// FFTSize returns the current analysis FFT size.
func (p *PathProducer) FFTSize() int {
	return p.gen.FFTSize()
}

// Process drains the pipeline once. bounds is the pixel-space render area
// for generated paths; sampleRate determines the bin-to-frequency mapping.
func (p *PathProducer) Process(bounds Rect, sampleRate float64) {
	for {
		blk, ok := p.blocks.Pull(p.incoming)
		if !ok {
			break
		}

		n := len(blk)
		if n >= len(p.mono) {
			copy(p.mono, blk[n-len(p.mono):])
		} else {
			copy(p.mono, p.mono[n:])
			copy(p.mono[len(p.mono)-n:], blk)
		}

		p.gen.ProduceFFTData(p.mono, p.floorDB)
	}

	fftSize := p.gen.FFTSize()
	binWidth := sampleRate / float64(fftSize)

	for p.gen.Available() > 0 {
		if p.gen.PullFFTData(p.dbScratch) {
			p.pathGen.GeneratePath(p.dbScratch, bounds, fftSize, binWidth, p.floorDB)
		}
	}

	// Latest-wins: drain every queued path, keep only the newest.
	for p.pathGen.Available() > 0 {
		if path, ok := p.pathGen.PullPath(p.latest); ok {
			p.latest = path
			p.hasPath = true
		}
	}
}

// Path returns the most recent render path. The returned slices stay valid
// until the next Process call on the same goroutine.
func (p *PathProducer) Path() (Path, bool) {
	return p.latest, p.hasPath
}
