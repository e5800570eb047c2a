package eq

import "github.com/cwbudde/algo-eq/dsp/fifo"

// DefaultAnalysisBlockSize is the fixed block size the collectors hand to
// the spectrum analyzer, independent of the host's processing block size.
const DefaultAnalysisBlockSize = 512

// SampleCollector accumulates one channel of the audio stream into
// fixed-size blocks and pushes each completed block into a lock-free ring
// for the analysis consumer. It runs entirely on the audio thread and
// performs no allocation after Prepare.
type SampleCollector struct {
	ring *fifo.Ring[[]float32]
	buf  []float32
	fill int

	prepared bool
}

// NewSampleCollector returns an unprepared collector. Prepare must be
// called before the first Update.
func NewSampleCollector() *SampleCollector {
	return &SampleCollector{}
}

// Prepare sizes the accumulation buffer and empties the block ring,
// discarding anything a previous consumer had not drained. Idempotent.
// When the block size is unchanged the ring is reset in place, so a
// consumer already wired to Blocks() stays attached across a re-prepare;
// only a size change replaces the ring.
func (c *SampleCollector) Prepare(blockSize int) {
	if blockSize <= 0 {
		blockSize = DefaultAnalysisBlockSize
	}

	if c.prepared && blockSize == len(c.buf) {
		c.ring.Reset()
		c.fill = 0

		return
	}

	c.ring = fifo.NewBlockRing(blockSize)
	c.buf = make([]float32, blockSize)
	c.fill = 0
	c.prepared = true
}

// Update appends the channel samples to the accumulation buffer. Each time
// the buffer fills, the completed block is pushed into the ring (dropped if
// the consumer lags) and accumulation restarts.
//
// Calling Update before Prepare is a programming error and panics.
func (c *SampleCollector) Update(samples []float32) {
	if !c.prepared {
		panic("eq: SampleCollector.Update called before Prepare")
	}

	for len(samples) > 0 {
		n := copy(c.buf[c.fill:], samples)
		c.fill += n
		samples = samples[n:]

		if c.fill == len(c.buf) {
			c.ring.Push(c.buf)
			c.fill = 0
		}
	}
}

// Blocks exposes the consumer side of the block ring.
func (c *SampleCollector) Blocks() *fifo.Ring[[]float32] {
	return c.ring
}

// BlockSize returns the configured analysis block size, or 0 before Prepare.
func (c *SampleCollector) BlockSize() int {
	return len(c.buf)
}
