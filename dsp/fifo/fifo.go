// Package fifo provides a fixed-capacity, lock-free single-producer/
// single-consumer ring buffer for transporting audio blocks, spectrum
// vectors and render paths between the real-time audio callback and the
// non-real-time analysis consumer.
//
// All slots are pre-allocated at construction; pushes and pulls deep-copy
// element payloads so producer and consumer never alias the same memory.
// A push into a full ring fails silently and never blocks, so the audio
// thread can always meet its deadline.
package fifo

import "sync/atomic"

// DefaultCapacity is the slot count used when no capacity option is given.
const DefaultCapacity = 30

// Ring is a single-producer/single-consumer queue of fixed-size elements.
// Exactly one goroutine may call Push and exactly one may call Pull.
type Ring[T any] struct {
	slots    []T
	copyElem func(dst, src T) T

	// Cursors advance monotonically; slot index is cursor modulo capacity.
	read  atomic.Uint64
	write atomic.Uint64
}

// Option configures a Ring.
type Option func(*ringConfig)

type ringConfig struct {
	capacity int
}

// WithCapacity overrides the slot count. Values < 1 are ignored.
func WithCapacity(n int) Option {
	return func(c *ringConfig) {
		if n >= 1 {
			c.capacity = n
		}
	}
}

// New creates a Ring whose slots are built once with newElem and whose
// pushes and pulls transfer payloads with copyElem. copyElem must copy src
// into dst's pre-allocated storage and return dst; it must not retain src.
func New[T any](newElem func() T, copyElem func(dst, src T) T, opts ...Option) *Ring[T] {
	cfg := ringConfig{capacity: DefaultCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := &Ring[T]{
		slots:    make([]T, cfg.capacity),
		copyElem: copyElem,
	}
	for i := range r.slots {
		r.slots[i] = newElem()
	}

	return r
}

// Push copies elem into the next free slot and returns true. It returns
// false without side effects when the ring is full. Never blocks, never
// allocates.
func (r *Ring[T]) Push(elem T) bool {
	w := r.write.Load()
	if w-r.read.Load() >= uint64(len(r.slots)) {
		return false
	}

	i := int(w % uint64(len(r.slots)))
	r.slots[i] = r.copyElem(r.slots[i], elem)
	r.write.Store(w + 1)

	return true
}

// Pull copies the oldest element into dst and returns (dst, true). It
// returns (dst, false) when the ring is empty.
func (r *Ring[T]) Pull(dst T) (T, bool) {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return dst, false
	}

	i := int(rd % uint64(len(r.slots)))
	dst = r.copyElem(dst, r.slots[i])
	r.read.Store(rd + 1)

	return dst, true
}

// Reset discards all queued elements. Slots and capacity are kept, so the
// ring stays valid for consumers holding a reference to it. Must not be
// called while a producer or consumer is active.
func (r *Ring[T]) Reset() {
	r.read.Store(0)
	r.write.Store(0)
}

// Available returns the number of elements ready for reading.
func (r *Ring[T]) Available() int {
	return int(r.write.Load() - r.read.Load())
}

// Capacity returns the slot count.
func (r *Ring[T]) Capacity() int {
	return len(r.slots)
}

// NewBlockRing returns a Ring of float32 blocks of the given fixed size.
// This is the transport used for raw audio blocks and dB spectrum vectors.
func NewBlockRing(blockSize int, opts ...Option) *Ring[[]float32] {
	newElem := func() []float32 {
		return make([]float32, blockSize)
	}
	copyElem := func(dst, src []float32) []float32 {
		copy(dst, src)
		return dst
	}

	return New(newElem, copyElem, opts...)
}
