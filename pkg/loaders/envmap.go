package loaders

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers the "webp" format with image.Decode

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
)

// LoadEnvironmentMap decodes an equirectangular environment texture (PNG,
// JPEG, or WebP, auto-detected by image.Decode the same way LoadImage
// does) and resamples it onto a width x height light.EnvMap grid, so a
// source texture of any resolution lands on the grid pkg/light's
// alias-table importance sampling actually iterates over.
func LoadEnvironmentMap(filename string, width, height int) (*light.EnvMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid environment map grid %dx%d: must be positive", width, height)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open environment map: %w", err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode environment map: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := dst.At(x, y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &light.EnvMap{Width: width, Height: height, Pixels: pixels}, nil
}
