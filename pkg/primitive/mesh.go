package primitive

import "github.com/lumenray/tracer/pkg/core"

// MeshOptions mirrors the teacher's TriangleMeshOptions (per-triangle
// normals/materials, optional rotation, per-vertex UVs).
type MeshOptions struct {
	Normals   []core.Vec3 // one per triangle, flat-shaded if nil
	BSDFs     []core.BSDF // one per triangle, falls back to the default if nil
	VertexUVs []core.Vec2 // one per vertex
}

// NewTriangleMesh builds the individual Triangle primitives of a mesh from
// shared vertex/face arrays. Unlike the teacher, which wraps a mesh in its
// own private BVH, the resulting triangles are flattened directly into the
// scene's top-level primitive list: a single scene-wide BVH over all
// primitives already gives meshes the same traversal performance without
// nesting one BVH inside another (see DESIGN.md, pkg/primitive entry).
func NewTriangleMesh(vertices []core.Vec3, faces []int, bsdf core.BSDF, options *MeshOptions) []core.Primitive {
	if len(faces)%3 != 0 {
		panic("face indices must be a multiple of 3")
	}
	numTriangles := len(faces) / 3

	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			panic("number of normals must match number of triangles")
		}
		if options.BSDFs != nil && len(options.BSDFs) != numTriangles {
			panic("number of BSDFs must match number of triangles")
		}
		if options.VertexUVs != nil && len(options.VertexUVs) != len(vertices) {
			panic("number of vertex UVs must match number of vertices")
		}
	}

	triangles := make([]core.Primitive, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("face index out of bounds")
		}
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		triBSDF := bsdf
		if options != nil && options.BSDFs != nil {
			triBSDF = options.BSDFs[i]
		}

		var tri *Triangle
		switch {
		case options != nil && options.Normals != nil && options.VertexUVs != nil:
			n := options.Normals[i]
			tri = NewTriangleSmooth(v0, v1, v2, n, n, n, triBSDF)
			tri.UV0, tri.UV1, tri.UV2 = options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2]
		case options != nil && options.Normals != nil:
			n := options.Normals[i]
			tri = NewTriangleSmooth(v0, v1, v2, n, n, n, triBSDF)
		case options != nil && options.VertexUVs != nil:
			tri = NewTriangle(v0, v1, v2, triBSDF)
			tri.UV0, tri.UV1, tri.UV2 = options.VertexUVs[i0], options.VertexUVs[i1], options.VertexUVs[i2]
		default:
			tri = NewTriangle(v0, v1, v2, triBSDF)
		}
		triangles[i] = tri
	}
	return triangles
}
