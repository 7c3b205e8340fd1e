package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/lumenray/tracer/pkg/core"
)

// GLTFData contains the raw data loaded from a glTF/GLB file's meshes,
// mirroring PLYData's field naming so both loaders hand the scene layer
// the same shape of data.
type GLTFData struct {
	Vertices  []core.Vec3
	Faces     []int       // Triangle indices (3 per triangle)
	Normals   []core.Vec3 // empty if the mesh carries no NORMAL attribute
	TexCoords []core.Vec2 // empty if the mesh carries no TEXCOORD_0 attribute
}

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file and flattens its
// every triangle-mode primitive of every mesh into one GLTFData, supplementing the
// teacher's hand-rolled PLY loader with a more complete mesh interchange
// format.
func LoadGLTF(filename string) (*GLTFData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file: %w", err)
	}

	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("glTF file has no meshes")
	}

	data := &GLTFData{}
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendGLTFPrimitive(doc, &prim, data); err != nil {
				return nil, fmt.Errorf("failed to read mesh %q: %w", mesh.Name, err)
			}
		}
	}

	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("glTF file has no triangle primitives")
	}
	return data, nil
}

func appendGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive, data *GLTFData) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := readGLTFVec3(doc, posIdx)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals []core.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readGLTFVec3(doc, normIdx)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []core.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = readGLTFVec2(doc, uvIdx)
		if err != nil {
			return fmt.Errorf("read texcoords: %w", err)
		}
	}

	base := len(data.Vertices)
	data.Vertices = append(data.Vertices, positions...)
	data.Normals = append(data.Normals, normals...)
	data.TexCoords = append(data.TexCoords, uvs...)

	if prim.Indices != nil {
		indices, err := readGLTFIndices(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for _, idx := range indices {
			data.Faces = append(data.Faces, base+idx)
		}
	} else {
		for i := range positions {
			data.Faces = append(data.Faces, base+i)
		}
	}
	return nil
}

func readGLTFVec3(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}

	buf, err := gltfBufferViewBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := gltfBufferViewStride(doc, accessor, 12)
	count := int(accessor.Count)
	out := make([]core.Vec3, count)
	for i := 0; i < count; i++ {
		off := i * stride
		out[i] = core.NewVec3(
			float64(readFloat32LE(buf[off:])),
			float64(readFloat32LE(buf[off+4:])),
			float64(readFloat32LE(buf[off+8:])),
		)
	}
	return out, nil
}

func readGLTFVec2(doc *gltf.Document, accessorIdx int) ([]core.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2 accessor, got %v", accessor.Type)
	}

	buf, err := gltfBufferViewBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := gltfBufferViewStride(doc, accessor, 8)
	count := int(accessor.Count)
	out := make([]core.Vec2, count)
	for i := 0; i < count; i++ {
		off := i * stride
		out[i] = core.Vec2{X: float64(readFloat32LE(buf[off:])), Y: float64(readFloat32LE(buf[off+4:]))}
	}
	return out, nil
}

func readGLTFIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	buf, err := gltfBufferViewBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	out := make([]int, int(accessor.Count))
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		stride := gltfBufferViewStride(doc, accessor, 1)
		for i := range out {
			out[i] = int(buf[i*stride])
		}
	case gltf.ComponentUshort:
		stride := gltfBufferViewStride(doc, accessor, 2)
		for i := range out {
			off := i * stride
			out[i] = int(uint16(buf[off]) | uint16(buf[off+1])<<8)
		}
	case gltf.ComponentUint:
		stride := gltfBufferViewStride(doc, accessor, 4)
		for i := range out {
			off := i * stride
			out[i] = int(uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24)
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return out, nil
}

// gltfBufferViewBytes resolves an accessor's backing bytes, offset to the
// accessor's own start within its buffer view.
func gltfBufferViewBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view (sparse accessors are not supported)")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer has no embedded data (external buffer URIs are not supported)")
	}
	start := int(view.ByteOffset) + int(accessor.ByteOffset)
	return buffer.Data[start:], nil
}

func gltfBufferViewStride(doc *gltf.Document, accessor *gltf.Accessor, tightStride int) int {
	if accessor.BufferView == nil {
		return tightStride
	}
	if stride := int(doc.BufferViews[*accessor.BufferView].ByteStride); stride != 0 {
		return stride
	}
	return tightStride
}

func readFloat32LE(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
