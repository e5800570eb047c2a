package analyzer

import (
	"math"
	"testing"
)

func TestGeneratePath_Geometry(t *testing.T) {
	const (
		fftSize    = 2048
		sampleRate = 44100.0
		floorDB    = DefaultFloorDB
	)
	numBins := fftSize / 2
	binWidth := sampleRate / float64(fftSize)

	bounds := Rect{X: 10, Y: 20, Width: 400, Height: 200}

	dbData := make([]float32, numBins)
	for i := range dbData {
		dbData[i] = float32(floorDB)
	}
	dbData[101] = 0 // one full-scale bin, on the generator's stride

	g := NewPathGenerator(numBins/pathResolution + 1)
	g.GeneratePath(dbData, bounds, fftSize, binWidth, floorDB)

	if g.Available() != 1 {
		t.Fatalf("available: got %d, want 1", g.Available())
	}

	path, ok := g.PullPath(newPath(numBins/pathResolution + 1))
	if !ok {
		t.Fatal("pull failed")
	}
	if path.Len() == 0 {
		t.Fatal("empty path")
	}

	if path.X[0] != float32(bounds.X) {
		t.Errorf("first point x: got %v, want %v", path.X[0], bounds.X)
	}

	top := float32(bounds.Y)
	bottom := float32(bounds.Bottom())
	for i := 0; i < path.Len(); i++ {
		if path.Y[i] < top || path.Y[i] > bottom {
			t.Errorf("point %d y out of bounds: %v", i, path.Y[i])
		}
		if path.X[i] < float32(bounds.X) || path.X[i] > float32(bounds.X+bounds.Width) {
			t.Errorf("point %d x out of bounds: %v", i, path.X[i])
		}
		if i > 0 && path.X[i] < path.X[i-1] {
			t.Errorf("x not monotonic at %d: %v < %v", i, path.X[i], path.X[i-1])
		}
	}

	// Floor bins render on the bottom edge; the full-scale bin reaches the top.
	if path.Y[1] != bottom {
		t.Errorf("floor bin y: got %v, want bottom %v", path.Y[1], bottom)
	}
	minY := path.Y[0]
	for _, y := range path.Y {
		if y < minY {
			minY = y
		}
	}
	if minY != top {
		t.Errorf("peak y: got %v, want top %v", minY, top)
	}
}

func TestGeneratePath_ClampsHostileValues(t *testing.T) {
	const fftSize = 256
	numBins := fftSize / 2

	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 50}

	dbData := make([]float32, numBins)
	dbData[0] = float32(math.NaN())
	dbData[1] = 1000  // far above 0 dB
	dbData[3] = -1000 // far below the floor

	g := NewPathGenerator(numBins/pathResolution + 1)
	g.GeneratePath(dbData, bounds, fftSize, 44100.0/fftSize, DefaultFloorDB)

	path, ok := g.PullPath(newPath(numBins/pathResolution + 1))
	if !ok {
		t.Fatal("pull failed")
	}

	for i := 0; i < path.Len(); i++ {
		y := float64(path.Y[i])
		if y < bounds.Y || y > bounds.Bottom() {
			t.Errorf("point %d escaped bounds: y=%v", i, y)
		}
	}
}

func TestGeneratePath_EmptySpectrum(t *testing.T) {
	g := NewPathGenerator(8)
	g.GeneratePath(nil, Rect{Width: 100, Height: 100}, 256, 100, DefaultFloorDB)

	if g.Available() != 0 {
		t.Error("empty spectrum produced a path")
	}
}

func TestGeneratePath_OverflowDropsPath(t *testing.T) {
	const fftSize = 64
	numBins := fftSize / 2
	dbData := make([]float32, numBins)
	bounds := Rect{Width: 100, Height: 100}

	g := NewPathGenerator(numBins/pathResolution + 1)

	pushes := 0
	for i := 0; i < 40; i++ {
		g.GeneratePath(dbData, bounds, fftSize, 100, DefaultFloorDB)
		if g.Available() > pushes {
			pushes = g.Available()
		}
	}

	// The ring holds its capacity; everything past that was dropped, not
	// queued or blocked on.
	if pushes > 30 {
		t.Errorf("queued %d paths, ring capacity is 30", pushes)
	}
}
