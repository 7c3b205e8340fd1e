package scene

import (
	"fmt"
	"strconv"

	"github.com/lumenray/tracer/pkg/bsdf"
	"github.com/lumenray/tracer/pkg/camera"
	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/light"
	"github.com/lumenray/tracer/pkg/loaders"
	"github.com/lumenray/tracer/pkg/material"
	"github.com/lumenray/tracer/pkg/primitive"
)

// NewPBRTScene builds a Scene from a parsed PBRT file, adapted from the
// teacher's same-named builder onto pkg/primitive/pkg/bsdf instead of
// pkg/geometry/pkg/material, using material.DefaultRegistry to turn a
// PBRT material statement's subtype into a core.BSDF.
func NewPBRTScene(filepath string, overrides ...camera.Config) (*Scene, error) {
	pbrtScene, err := loaders.LoadPBRT(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load PBRT file: %v", err)
	}

	s := &Scene{
		Config: core.SamplingConfig{
			Width: 400, Height: 400,
			SamplesPerPixel:           100,
			NsAreaLight:               4,
			MaxDepth:                  5,
			RussianRouletteMinBounces: 3,
		},
	}

	if err := convertPBRTCamera(pbrtScene, s, overrides...); err != nil {
		return nil, fmt.Errorf("failed to convert camera: %v", err)
	}

	registry := material.DefaultRegistry()

	surfaces := make([]core.BSDF, len(pbrtScene.Materials))
	for i, matStmt := range pbrtScene.Materials {
		surface, err := convertPBRTMaterial(registry, &matStmt)
		if err != nil {
			return nil, fmt.Errorf("failed to convert material: %v", err)
		}
		surfaces[i] = surface
	}

	for _, shapeStmt := range pbrtScene.Shapes {
		var surface core.BSDF
		if shapeStmt.MaterialIndex >= 0 && shapeStmt.MaterialIndex < len(surfaces) {
			surface = surfaces[shapeStmt.MaterialIndex]
		} else if !isAreaLightShape(&shapeStmt) {
			return nil, fmt.Errorf("shape has no valid material (MaterialIndex: %d)", shapeStmt.MaterialIndex)
		}
		if err := addPBRTShape(&shapeStmt, surface, s); err != nil {
			return nil, fmt.Errorf("failed to convert shape: %v", err)
		}
	}

	for _, lightStmt := range pbrtScene.LightSources {
		if lightStmt.Type == "AreaLightSource" {
			continue
		}
		l, err := convertPBRTLight(&lightStmt, s)
		if err != nil {
			return nil, fmt.Errorf("failed to convert light: %v", err)
		}
		if l != nil {
			s.Lights = append(s.Lights, l)
		}
	}

	for _, attrBlock := range pbrtScene.Attributes {
		if err := processPBRTAttributeBlock(registry, &attrBlock, s, surfaces); err != nil {
			return nil, fmt.Errorf("failed to process attribute block: %v", err)
		}
	}

	return s, nil
}

func convertPBRTCamera(pbrtScene *loaders.PBRTScene, s *Scene, overrides ...camera.Config) error {
	cfg := camera.Config{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		Width: 400, AspectRatio: 1.0, VFov: 90.0,
	}

	if pbrtScene.LookAt != nil && pbrtScene.LookAtTo != nil && pbrtScene.LookAtUp != nil {
		cfg.Center, cfg.LookAt, cfg.Up = *pbrtScene.LookAt, *pbrtScene.LookAtTo, *pbrtScene.LookAtUp
	}

	if pbrtScene.Camera != nil && pbrtScene.Camera.Subtype == "perspective" {
		if fov, ok := pbrtScene.Camera.GetFloatParam("fov"); ok {
			if fov <= 0 || fov >= 180 {
				return fmt.Errorf("invalid camera FOV %f: must be between 0 and 180 degrees", fov)
			}
			cfg.VFov = fov
		}
	}

	if pbrtScene.Film != nil {
		if width, ok := pbrtScene.Film.GetFloatParam("xresolution"); ok {
			if width <= 0 || width > 8192 {
				return fmt.Errorf("invalid image width %f: must be between 1 and 8192", width)
			}
			cfg.Width = int(width)
			s.Config.Width = int(width)
		}
		if height, ok := pbrtScene.Film.GetFloatParam("yresolution"); ok {
			if height <= 0 || height > 8192 {
				return fmt.Errorf("invalid image height %f: must be between 1 and 8192", height)
			}
			s.Config.Height = int(height)
			cfg.AspectRatio = float64(cfg.Width) / height
		}
	}

	if len(overrides) > 0 {
		cfg = overrides[0]
		s.Config.Width = cfg.Width
		s.Config.Height = int(float64(cfg.Width) / cfg.AspectRatio)
	}

	s.Camera = camera.New(cfg)
	return nil
}

func convertPBRTMaterial(registry *material.Registry, stmt *loaders.PBRTStatement) (core.BSDF, error) {
	switch stmt.Subtype {
	case "diffuse":
		albedo := core.NewVec3(0.7, 0.7, 0.7)
		if rgb, ok := stmt.GetRGBParam("reflectance"); ok {
			albedo = *rgb
		}
		b, _ := registry.Build(material.Desc{Kind: "diffuse", Albedo: albedo})
		return b, nil

	case "conductor":
		reflectance := core.NewVec3(0.7, 0.6, 0.5)
		if rgb, ok := stmt.GetRGBParam("eta"); ok {
			reflectance = *rgb
		}
		b, _ := registry.Build(material.Desc{Kind: "mirror", Reflectance: reflectance})
		return b, nil

	case "dielectric":
		ior := 1.5
		if eta, ok := stmt.GetFloatParam("eta"); ok {
			if eta <= 0 {
				return nil, fmt.Errorf("invalid dielectric IOR %f: must be positive", eta)
			}
			ior = eta
		}
		white := core.NewVec3(1, 1, 1)
		b, _ := registry.Build(material.Desc{Kind: "glass", Reflectance: white, Transmittance: white, IOR: ior})
		return b, nil

	default:
		return nil, fmt.Errorf("unsupported material type: %s", stmt.Subtype)
	}
}

// convertPBRTShape returns the primitives a shape statement expands to (a
// trianglemesh expands to one Triangle per face).
func convertPBRTShape(stmt *loaders.PBRTStatement, surface core.BSDF) ([]core.Primitive, error) {
	if surface == nil {
		return nil, fmt.Errorf("shape has no material")
	}

	switch stmt.Subtype {
	case "sphere":
		radius := 1.0
		if r, ok := stmt.GetFloatParam("radius"); ok {
			if r <= 0 {
				return nil, fmt.Errorf("invalid sphere radius %f: must be positive", r)
			}
			radius = r
		}
		return []core.Primitive{primitive.NewSphere(core.Vec3{}, radius, surface)}, nil

	case "bilinearPatch":
		p00, ok1 := stmt.GetPoint3Param("P00")
		p01, ok2 := stmt.GetPoint3Param("P01")
		p10, ok3 := stmt.GetPoint3Param("P10")
		_, ok4 := stmt.GetPoint3Param("P11")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, fmt.Errorf("bilinearPatch missing corner points")
		}
		u := p01.Subtract(*p00)
		v := p10.Subtract(*p00)
		return []core.Primitive{primitive.NewQuad(*p00, u, v, surface)}, nil

	case "trianglemesh":
		param, ok := stmt.Parameters["P"]
		if !ok || len(param.Values)%3 != 0 {
			return nil, fmt.Errorf("trianglemesh missing or invalid vertices")
		}
		vertices := make([]core.Vec3, 0, len(param.Values)/3)
		for i := 0; i < len(param.Values); i += 3 {
			x, err := strconv.ParseFloat(param.Values[i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vertex X coordinate %q: %v", param.Values[i], err)
			}
			y, err := strconv.ParseFloat(param.Values[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vertex Y coordinate %q: %v", param.Values[i+1], err)
			}
			z, err := strconv.ParseFloat(param.Values[i+2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vertex Z coordinate %q: %v", param.Values[i+2], err)
			}
			vertices = append(vertices, core.NewVec3(x, y, z))
		}

		indicesParam, ok := stmt.Parameters["indices"]
		if !ok || len(indicesParam.Values)%3 != 0 {
			return nil, fmt.Errorf("trianglemesh missing or invalid indices")
		}
		indices := make([]int, 0, len(indicesParam.Values))
		for _, idxStr := range indicesParam.Values {
			idx, _ := strconv.Atoi(idxStr)
			indices = append(indices, idx)
		}

		return primitive.NewTriangleMesh(vertices, indices, surface, nil), nil

	case "plymesh":
		filename, ok := stmt.GetStringParam("filename")
		if !ok {
			return nil, fmt.Errorf("plymesh missing filename parameter")
		}
		plyData, err := loaders.LoadPLY(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load PLY mesh %q: %w", filename, err)
		}
		return primitive.NewTriangleMesh(plyData.Vertices, plyData.Faces, surface, nil), nil

	case "gltfmesh":
		filename, ok := stmt.GetStringParam("filename")
		if !ok {
			return nil, fmt.Errorf("gltfmesh missing filename parameter")
		}
		gltfData, err := loaders.LoadGLTF(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load glTF mesh %q: %w", filename, err)
		}
		return primitive.NewTriangleMesh(gltfData.Vertices, gltfData.Faces, surface, nil), nil

	default:
		return nil, fmt.Errorf("unsupported shape type: %s", stmt.Subtype)
	}
}

func convertPBRTLight(stmt *loaders.PBRTStatement, s *Scene) (light.Light, error) {
	switch stmt.Subtype {
	case "point":
		intensity := core.NewVec3(10, 10, 10)
		if rgb, ok := stmt.GetRGBParam("I"); ok {
			intensity = *rgb
		}
		position := core.NewVec3(0, 5, 0)
		if pos, ok := stmt.GetPoint3Param("from"); ok {
			position = *pos
		}
		return light.NewPoint(position, intensity), nil

	case "distant":
		radiance := core.NewVec3(3, 3, 3)
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			radiance = *rgb
		}
		direction := core.NewVec3(0, -1, 0)
		if from, ok := stmt.GetPoint3Param("from"); ok {
			if to, ok2 := stmt.GetPoint3Param("to"); ok2 {
				direction = to.Subtract(*from)
			}
		}
		return light.NewDirectional(direction, radiance), nil

	case "infinite", "infinite-gradient":
		top := core.NewVec3(1, 1, 1)
		bottom := top
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			top, bottom = *rgb, *rgb
		}
		if rgb, ok := stmt.GetRGBParam("topColor"); ok {
			top = *rgb
		}
		if rgb, ok := stmt.GetRGBParam("bottomColor"); ok {
			bottom = *rgb
		}
		s.AddEnvironmentLight(skyGradientMap(top, bottom))
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported light type: %s", stmt.Subtype)
	}
}

// isAreaLightShape reports whether the parser tagged this shape as an area
// light emitter (it copies an "_areaLight" marker plus "L"/"power" params
// from an enclosing AreaLightSource statement onto the shape itself).
func isAreaLightShape(stmt *loaders.PBRTStatement) bool {
	_, ok := stmt.Parameters["_areaLight"]
	return ok
}

func areaLightEmission(stmt *loaders.PBRTStatement) core.Spectrum {
	if rgb, ok := stmt.GetRGBParam("L"); ok {
		return *rgb
	}
	if rgb, ok := stmt.GetRGBParam("power"); ok {
		return *rgb
	}
	return core.NewVec3(1, 1, 1)
}

// asAreaLight wraps a just-built primitive as an Area light; meshes are
// not supported as area emitters (neither was the teacher's converter).
func asAreaLight(prim core.Primitive, emission core.Spectrum) light.Light {
	switch shape := prim.(type) {
	case *primitive.Quad:
		return light.NewAreaQuad(shape, emission)
	case *primitive.Disc:
		return light.NewAreaDisc(shape, emission)
	case *primitive.Sphere:
		return light.NewAreaSphere(shape, emission)
	default:
		return nil
	}
}

// addPBRTShape converts a shape statement and appends its primitives to
// the scene, also registering an Area light when the shape is tagged as
// an emitter.
func addPBRTShape(stmt *loaders.PBRTStatement, surface core.BSDF, s *Scene) error {
	if isAreaLightShape(stmt) {
		surface = bsdf.NewEmissive(areaLightEmission(stmt))
	}

	shapes, err := convertPBRTShape(stmt, surface)
	if err != nil {
		return err
	}
	s.Shapes = append(s.Shapes, shapes...)

	if isAreaLightShape(stmt) {
		emission := areaLightEmission(stmt)
		for _, prim := range shapes {
			if l := asAreaLight(prim, emission); l != nil {
				s.Lights = append(s.Lights, l)
			}
		}
	}
	return nil
}

func processPBRTAttributeBlock(registry *material.Registry, block *loaders.AttributeBlock, s *Scene, globalSurfaces []core.BSDF) error {
	localSurfaces := make([]core.BSDF, len(block.Materials))
	for i, matStmt := range block.Materials {
		surface, err := convertPBRTMaterial(registry, &matStmt)
		if err != nil {
			return fmt.Errorf("failed to convert material in attribute block: %v", err)
		}
		localSurfaces[i] = surface
	}

	for _, shapeStmt := range block.Shapes {
		var surface core.BSDF
		switch {
		case len(localSurfaces) > 0 && shapeStmt.MaterialIndex >= 0 && shapeStmt.MaterialIndex < len(localSurfaces):
			surface = localSurfaces[shapeStmt.MaterialIndex]
		case shapeStmt.MaterialIndex >= 0 && shapeStmt.MaterialIndex < len(globalSurfaces):
			surface = globalSurfaces[shapeStmt.MaterialIndex]
		default:
			if !isAreaLightShape(&shapeStmt) {
				return fmt.Errorf("shape has no valid material (MaterialIndex: %d)", shapeStmt.MaterialIndex)
			}
		}

		if err := addPBRTShape(&shapeStmt, surface, s); err != nil {
			return fmt.Errorf("failed to convert shape in attribute block: %v", err)
		}
	}

	for _, lightStmt := range block.LightSources {
		if lightStmt.Type == "AreaLightSource" {
			continue
		}
		l, err := convertPBRTLight(&lightStmt, s)
		if err != nil {
			return fmt.Errorf("failed to convert light in attribute block: %v", err)
		}
		if l != nil {
			s.Lights = append(s.Lights, l)
		}
	}

	return nil
}
