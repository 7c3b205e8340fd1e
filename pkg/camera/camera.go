// Package camera implements the perspective camera of spec.md §6 (generate_ray,
// position, get_screen_pos), grounded on the teacher's renderer.CameraConfig/
// NewCamera contract (recovered from pkg/renderer/camera_test.go and the
// scene builders' usage in pkg/scene/cornell.go, since the teacher's
// retrieved pkg/renderer/camera.go snapshot is a stale fixed-viewport
// version predating that richer config). Adds thin-lens depth of field
// (Aperture/FocusDistance) the same way the teacher's scene builders expect.
package camera

import (
	"math"

	"github.com/lumenray/tracer/pkg/core"
)

// Config describes a look-at perspective camera.
type Config struct {
	Center Vec3
	LookAt Vec3
	Up     Vec3

	Width       int
	AspectRatio float64
	VFov        float64 // vertical field of view, degrees

	Aperture      float64 // lens diameter; 0 disables depth of field
	FocusDistance float64 // 0 auto-computes from Center/LookAt distance
}

// Vec3 is a local alias so scene-construction code need not import core
// just to build a Config.
type Vec3 = core.Vec3

// Camera implements core.Camera with a look-at perspective projection and
// optional thin-lens depth of field.
type Camera struct {
	center  core.Vec3
	u, v, w core.Vec3 // orthonormal basis; w points from LookAt toward Center
	forward core.Vec3

	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3

	lensRadius    float64
	focusDistance float64
	viewportArea  float64 // viewport area scaled to unit distance, for PDFs
}

func New(cfg Config) *Camera {
	focusDistance := cfg.FocusDistance
	if focusDistance <= 0 {
		focusDistance = cfg.Center.Subtract(cfg.LookAt).Length()
		if focusDistance <= 0 {
			focusDistance = 1
		}
	}

	w := cfg.Center.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	theta := cfg.VFov * math.Pi / 180.0
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := cfg.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(-viewportHeight) // negate: image v=0 is the top row

	lowerLeft := cfg.Center.
		Add(w.Negate().Multiply(focusDistance)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	unitHeight := viewportHeight / focusDistance
	unitWidth := viewportWidth / focusDistance

	return &Camera{
		center:          cfg.Center,
		u:               u,
		v:               v,
		w:               w,
		forward:         w.Negate(),
		lowerLeftCorner: lowerLeft,
		horizontal:      horizontal,
		vertical:        vertical,
		lensRadius:      cfg.Aperture / 2,
		focusDistance:   focusDistance,
		viewportArea:    unitWidth * unitHeight,
	}
}

// GenerateRay implements core.Camera: u,v in [0,1]^2, v=0 at the top row.
func (c *Camera) GenerateRay(u, v float64, sampler core.Sampler) core.Ray {
	origin := c.center
	if c.lensRadius > 0 {
		lensSample := core.UniformSampleDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = c.center.Add(c.u.Multiply(lensSample.X)).Add(c.v.Multiply(lensSample.Y))
	}

	pointOnPlane := c.lowerLeftCorner.Add(c.horizontal.Multiply(u)).Add(c.vertical.Multiply(v))
	direction := pointOnPlane.Subtract(origin).Normalize()
	return core.NewRay(origin, direction)
}

func (c *Camera) Position() core.Vec3 { return c.center }
func (c *Camera) Forward() core.Vec3  { return c.forward }

// GetScreenPos projects worldPoint back through the pinhole onto [0,1]^2,
// the inverse of GenerateRay's plane mapping (ignoring lens jitter, which
// GenerateRay itself treats as a small positional perturbation of the same
// pinhole projection), for BDPT's camera-splat connection (spec.md §4.6.2
// Case III).
func (c *Camera) GetScreenPos(worldPoint core.Vec3) (u, v float64, onScreen bool) {
	diff := worldPoint.Subtract(c.center)
	depth := diff.Dot(c.forward)
	if depth <= 1e-6 {
		return 0, 0, false
	}

	pointAtFocus := c.center.Add(diff.Multiply(c.focusDistance / depth))
	offset := pointAtFocus.Subtract(c.lowerLeftCorner)

	u = offset.Dot(c.horizontal) / c.horizontal.LengthSquared()
	v = offset.Dot(c.vertical) / c.vertical.LengthSquared()

	onScreen = u >= 0 && u <= 1 && v >= 0 && v <= 1
	return u, v, onScreen
}

// PDFs returns the (positional, directional) sampling density for a ray
// this camera could have generated, approximating PBRT's perspective-camera
// Pdf_We: a uniform density over the lens (or a point mass for a pinhole)
// times a cos^3(theta)-falloff directional density over the image plane's
// solid angle, needed by BDPT to weight camera-vertex connections (spec.md
// §4.6.2 Case III).
func (c *Camera) PDFs(ray core.Ray) (posPdf, dirPdf float64) {
	cosTheta := ray.Direction.Normalize().Dot(c.forward)
	if cosTheta <= 0 {
		return 0, 0
	}

	if c.lensRadius > 0 {
		posPdf = 1.0 / (math.Pi * c.lensRadius * c.lensRadius)
	} else {
		posPdf = 1.0
	}

	dirPdf = 1.0 / (c.viewportArea * cosTheta * cosTheta * cosTheta)
	return posPdf, dirPdf
}

var _ core.Camera = (*Camera)(nil)
