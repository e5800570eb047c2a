package analyzer

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/fifo"
)

// Rect is a pixel-space render area. Y grows downward: Y is the top edge,
// Y+Height the bottom.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Path is a pixel-space polyline: point i is (X[i], Y[i]).
type Path struct {
	X, Y []float32
}

// Len returns the point count.
func (p Path) Len() int {
	return len(p.X)
}

func newPath(maxPoints int) Path {
	return Path{
		X: make([]float32, 0, maxPoints),
		Y: make([]float32, 0, maxPoints),
	}
}

func copyPath(dst, src Path) Path {
	dst.X = append(dst.X[:0], src.X...)
	dst.Y = append(dst.Y[:0], src.Y...)

	return dst
}

// pathResolution is the bin stride of the generated polyline; drawing a
// point for every bin buys nothing at screen resolution.
const pathResolution = 2

// PathGenerator converts dB spectra into renderable polylines and queues
// them in an internal ring for the display consumer.
type PathGenerator struct {
	ring    *fifo.Ring[Path]
	scratch Path
}

// NewPathGenerator creates a generator whose path slots hold up to
// maxPoints points each.
func NewPathGenerator(maxPoints int) *PathGenerator {
	return &PathGenerator{
		ring: fifo.New(
			func() Path { return newPath(maxPoints) },
			copyPath,
		),
		scratch: newPath(maxPoints),
	}
}

// GeneratePath maps dbData onto bounds and queues the resulting polyline.
//
// Bin index maps to a log-frequency x position over [20, 20000] Hz; the dB
// value maps linearly to y with floorDB at the bottom edge and 0 dB at the
// top. Off-scale and non-finite values are clamped to the render area, so
// the output is always drawable.
func (g *PathGenerator) GeneratePath(dbData []float32, bounds Rect, fftSize int, binWidth, floorDB float64) {
	numBins := fftSize / 2
	if numBins > len(dbData) {
		numBins = len(dbData)
	}

	if numBins == 0 {
		return
	}

	top := bounds.Y
	bottom := bounds.Bottom()

	mapY := func(db float32) float32 {
		y := core.Lerp(float64(db), floorDB, 0, bottom, top)
		if !core.IsFinite(y) {
			return float32(bottom)
		}

		return float32(core.Clamp(y, top, bottom))
	}

	g.scratch.X = g.scratch.X[:0]
	g.scratch.Y = g.scratch.Y[:0]

	g.scratch.X = append(g.scratch.X, float32(bounds.X))
	g.scratch.Y = append(g.scratch.Y, mapY(dbData[0]))

	for bin := 1; bin < numBins; bin += pathResolution {
		binFreq := float64(bin) * binWidth
		normX := core.Clamp(core.MapFromLog10(binFreq, 20, 20000), 0, 1)
		x := bounds.X + math.Floor(normX*bounds.Width)

		g.scratch.X = append(g.scratch.X, float32(x))
		g.scratch.Y = append(g.scratch.Y, mapY(dbData[bin]))
	}

	g.ring.Push(g.scratch)
}

// Available returns the number of queued paths.
func (g *PathGenerator) Available() int {
	return g.ring.Available()
}

// PullPath copies the oldest queued path into dst's storage and returns it.
func (g *PathGenerator) PullPath(dst Path) (Path, bool) {
	return g.ring.Pull(dst)
}
