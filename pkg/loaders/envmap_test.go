package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func writePNGFixture(t *testing.T, width, height int, fill func(x, y int) color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}

	f, err := os.CreateTemp("", "envmap_test_*.png")
	if err != nil {
		t.Fatalf("failed to create temp PNG file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("failed to encode PNG fixture: %v", err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestLoadEnvironmentMap_ResamplesToRequestedGrid(t *testing.T) {
	path := writePNGFixture(t, 8, 4, func(x, y int) color.RGBA {
		return color.RGBA{R: 255, G: 0, B: 0, A: 255}
	})

	m, err := LoadEnvironmentMap(path, 16, 8)
	if err != nil {
		t.Fatalf("LoadEnvironmentMap() error = %v", err)
	}
	if m.Width != 16 || m.Height != 8 {
		t.Fatalf("expected a 16x8 grid, got %dx%d", m.Width, m.Height)
	}
	if len(m.Pixels) != 16*8 {
		t.Fatalf("expected %d pixels, got %d", 16*8, len(m.Pixels))
	}

	center := m.Pixels[4*16+8]
	if center.X < 0.9 || center.Y > 0.1 || center.Z > 0.1 {
		t.Errorf("expected a resampled solid-red source to stay red, got %v", center)
	}
}

func TestLoadEnvironmentMap_InvalidGrid(t *testing.T) {
	path := writePNGFixture(t, 4, 4, func(x, y int) color.RGBA {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	})

	if _, err := LoadEnvironmentMap(path, 0, 8); err == nil {
		t.Fatal("expected an error for a non-positive grid width")
	}
}

func TestLoadEnvironmentMap_MissingFile(t *testing.T) {
	if _, err := LoadEnvironmentMap("does-not-exist.png", 4, 4); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
