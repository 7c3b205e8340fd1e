package material

import "github.com/lumenray/tracer/pkg/core"

// SolidColor is a constant core.Texture, grounded on the teacher's
// material.SolidColor.
type SolidColor struct {
	Color core.Spectrum
}

func NewSolidColor(color core.Spectrum) *SolidColor { return &SolidColor{Color: color} }

func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum { return s.Color }

// ImageTexture samples a decoded 2D image by UV, grounded on the teacher's
// material.ImageTexture (nearest-neighbor, V flipped to match image
// row order where y=0 is the top row).
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Spectrum // row-major, Pixels[y*Width+x]
}

func NewImageTexture(width, height int, pixels []core.Spectrum) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Spectrum {
	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return t.Pixels[y*t.Width+x]
}

// NewCheckerboardTexture builds a procedural checker pattern, grounded on
// the teacher's material.NewCheckerboardTexture.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Spectrum) *ImageTexture {
	pixels := make([]core.Spectrum, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}
	return NewImageTexture(width, height, pixels)
}
