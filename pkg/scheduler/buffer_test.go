package scheduler

import (
	"math"
	"sync"
	"testing"

	"github.com/lumenray/tracer/pkg/core"
)

func TestSampleBuffer_UpdatePixel_Averages(t *testing.T) {
	buf := NewSampleBuffer(4, 4)
	buf.UpdatePixel(1, 1, core.Spectrum{X: 1, Y: 0, Z: 0})
	buf.UpdatePixel(1, 1, core.Spectrum{X: 0, Y: 1, Z: 0})

	got := buf.Color(1, 1)
	want := core.Spectrum{X: 0.5, Y: 0.5, Z: 0}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("Color = %v, want %v", got, want)
	}
}

func TestSampleBuffer_UpdatePixel_RejectsNonFinite(t *testing.T) {
	buf := NewSampleBuffer(2, 2)
	buf.UpdatePixel(0, 0, core.Spectrum{X: math.Inf(1), Y: 0, Z: 0})

	if buf.SampleCount(0, 0) != 0 {
		t.Fatal("non-finite sample must not be accumulated")
	}
}

func TestSampleBuffer_UpdatePixelAdd_ConcurrentSplats(t *testing.T) {
	buf := NewSampleBuffer(8, 8)
	const n = 1000

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf.UpdatePixelAdd(3, 3, core.Spectrum{X: 1, Y: 1, Z: 1})
		}()
	}
	wg.Wait()

	got := buf.Color(3, 3)
	want := float64(n)
	if math.Abs(got.X-want) > 1e-3 {
		t.Fatalf("splat accumulation = %v, want ~%v (lost update under concurrency)", got.X, want)
	}
}

func TestSampleBuffer_OutOfBounds_NoOp(t *testing.T) {
	buf := NewSampleBuffer(2, 2)
	buf.UpdatePixel(-1, 0, core.Spectrum{X: 1, Y: 1, Z: 1})
	buf.UpdatePixelAdd(5, 5, core.Spectrum{X: 1, Y: 1, Z: 1})
	if buf.Color(-1, 0) != core.BlackSpectrum {
		t.Fatal("out-of-bounds Color should be black")
	}
}

func TestResolve_GammaEncodesAndConvertsToImage(t *testing.T) {
	buf := NewSampleBuffer(2, 2)
	buf.UpdatePixel(0, 0, core.Spectrum{X: 1, Y: 1, Z: 1})

	fb := Resolve(buf)
	if fb.Pixels[0].X != 1 {
		t.Fatalf("gamma(1.0) should stay 1.0, got %v", fb.Pixels[0].X)
	}

	img := fb.ToImage()
	px := img.RGBAAt(0, 0)
	if px.A == 0 {
		t.Fatal("expected opaque alpha")
	}
	if px.R != 255 {
		t.Fatalf("expected full-white channel to clamp to 255, got %d", px.R)
	}
}
