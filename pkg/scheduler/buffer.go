// Package scheduler drives the integrators over the image plane: it owns
// the work queue, the worker pool, and the sample accumulation buffers
// (spec.md §4.7), grounded on the teacher's pkg/renderer (ProgressiveRaytracer,
// WorkerPool, Tile, PixelStats, SplatQueue), restructured around an explicit
// state machine and errgroup-based cancellation instead of the teacher's
// hand-rolled channel/WaitGroup pair.
package scheduler

import (
	"image"
	"math"
	"sync/atomic"

	"github.com/lumenray/tracer/pkg/core"
)

// fixedPointScale converts a float64 radiance channel into an int64 fixed
// point representation atomic.Int64 can accumulate losslessly for the
// dynamic range this renderer operates in (spec.md §5's atomic per-pixel
// accumulation requirement for BDPT's cross-tile splats).
const fixedPointScale = 1 << 16

// pixelCell holds one pixel's running sums. ColorSum accumulates via
// UpdatePixel (unsynchronized, tile-disjoint writers) and addR/addG/addB
// accumulate via UpdatePixelAdd (atomic, used for BDPT case-III splats
// that can land in any worker's tile, not just the splatting worker's own).
type pixelCell struct {
	ColorSum    core.Spectrum
	SampleCount int

	addR, addG, addB atomic.Int64
	addCount         atomic.Int64
}

// SampleBuffer accumulates per-pixel radiance samples over the image plane.
type SampleBuffer struct {
	Width, Height int
	cells         []pixelCell
}

func NewSampleBuffer(width, height int) *SampleBuffer {
	return &SampleBuffer{Width: width, Height: height, cells: make([]pixelCell, width*height)}
}

func (b *SampleBuffer) index(x, y int) int { return y*b.Width + x }

func (b *SampleBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// UpdatePixel overwrite-averages a new sample into pixel (x,y). Safe to call
// concurrently only when distinct workers never share a pixel (the
// tile-disjoint unidirectional path tracing case, spec.md §4.7).
func (b *SampleBuffer) UpdatePixel(x, y int, color core.Spectrum) {
	if !b.inBounds(x, y) || !color.IsFinite() {
		return
	}
	cell := &b.cells[b.index(x, y)]
	cell.ColorSum = cell.ColorSum.Add(color)
	cell.SampleCount++
}

// UpdatePixelAdd atomically accumulates a splat contribution into pixel
// (x,y), safe for concurrent callers writing to the same pixel from
// different tiles (BDPT case III, spec.md §3/§5).
func (b *SampleBuffer) UpdatePixelAdd(x, y int, color core.Spectrum) {
	if !b.inBounds(x, y) || !color.IsFinite() {
		return
	}
	cell := &b.cells[b.index(x, y)]
	cell.addR.Add(int64(color.X * fixedPointScale))
	cell.addG.Add(int64(color.Y * fixedPointScale))
	cell.addB.Add(int64(color.Z * fixedPointScale))
	cell.addCount.Add(1)
}

// Color returns the current averaged radiance at (x,y), combining the
// overwrite-average accumulator with any atomically-splatted contributions.
func (b *SampleBuffer) Color(x, y int) core.Spectrum {
	if !b.inBounds(x, y) {
		return core.BlackSpectrum
	}
	cell := &b.cells[b.index(x, y)]

	var result core.Spectrum
	if cell.SampleCount > 0 {
		result = cell.ColorSum.Multiply(1.0 / float64(cell.SampleCount))
	}

	splatCount := cell.addCount.Load()
	if splatCount > 0 {
		splat := core.Spectrum{
			X: float64(cell.addR.Load()) / fixedPointScale,
			Y: float64(cell.addG.Load()) / fixedPointScale,
			Z: float64(cell.addB.Load()) / fixedPointScale,
		}
		// Splats arrive already scaled by 1/ns_aa at the source (BDPT's case
		// III, spec.md §4.6.2's closing paragraph), so they are added as-is:
		// summing ns_aa of them (one light subpath per TraceRay call) yields
		// the same averaged-over-samples estimator UpdatePixel's
		// ColorSum/SampleCount division produces directly.
		result = result.Add(splat)
	}

	return result
}

// SampleCount returns the number of UpdatePixel samples accumulated at
// (x,y) (splats from UpdatePixelAdd are not counted, matching the
// teacher's PixelStats.SampleCount semantics).
func (b *SampleBuffer) SampleCount(x, y int) int {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.cells[b.index(x, y)].SampleCount
}

// FrameBuffer is the resolved, tone-mapping-ready output image: a
// gamma-corrected core.Spectrum grid ready for PNG encoding by the
// out-of-scope caller (spec.md §6 excludes image encoding from the core).
type FrameBuffer struct {
	Width, Height int
	Pixels        []core.Spectrum
}

// Resolve snapshots a SampleBuffer into a FrameBuffer, applying the
// standard gamma-2.2 encode the teacher's own image writer applies.
func Resolve(buf *SampleBuffer) *FrameBuffer {
	fb := &FrameBuffer{Width: buf.Width, Height: buf.Height, Pixels: make([]core.Spectrum, buf.Width*buf.Height)}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			fb.Pixels[y*buf.Width+x] = gammaEncode(buf.Color(x, y))
		}
	}
	return fb
}

func gammaEncode(c core.Spectrum) core.Spectrum {
	return core.Spectrum{X: gammaChannel(c.X), Y: gammaChannel(c.Y), Z: gammaChannel(c.Z)}
}

func gammaChannel(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v, 1.0/2.2)
}

// ToImage converts a FrameBuffer into a standard 8-bit image.RGBA.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Pixels[y*fb.Width+x]
			img.SetRGBA(x, y, toRGBA(c))
		}
	}
	return img
}

func toRGBA(c core.Spectrum) (r, g, b, a uint8) {
	return clamp8(c.X), clamp8(c.Y), clamp8(c.Z), 255
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
