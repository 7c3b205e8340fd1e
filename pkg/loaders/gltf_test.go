package loaders

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
)

func encodeVec3Buffer(vecs [][3]float32) []byte {
	buf := make([]byte, 0, len(vecs)*12)
	for _, v := range vecs {
		for _, f := range v {
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, math.Float32bits(f))
			buf = append(buf, b...)
		}
	}
	return buf
}

func encodeUint16Buffer(indices []uint16) []byte {
	buf := make([]byte, 0, len(indices)*2)
	for _, idx := range indices {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, idx)
		buf = append(buf, b...)
	}
	return buf
}

// buildTriangleDoc assembles a minimal in-memory document with a single
// triangle: one POSITION accessor and one uint16 index accessor, both
// backed by the same embedded buffer.
func buildTriangleDoc(t *testing.T) (*gltf.Document, *gltf.Primitive) {
	t.Helper()

	positions := encodeVec3Buffer([][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	})
	indices := encodeUint16Buffer([]uint16{0, 1, 2})

	data := append(append([]byte{}, positions...), indices...)

	posView, idxView := 0, 1
	idxAccessor := 1

	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{
			{ByteLength: uint32(len(data)), Data: data},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: uint32(len(positions))},
			{Buffer: 0, ByteOffset: uint32(len(positions)), ByteLength: uint32(len(indices))},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: &posView, ByteOffset: 0, Type: gltf.AccessorVec3, Count: 3},
			{BufferView: &idxView, ByteOffset: 0, ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: 3},
		},
	}
	prim := &gltf.Primitive{
		Attributes: gltf.Attribute{gltf.POSITION: 0},
		Indices:    &idxAccessor,
		Mode:       gltf.PrimitiveTriangles,
	}
	return doc, prim
}

func TestAppendGLTFPrimitive_PositionsAndIndices(t *testing.T) {
	doc, prim := buildTriangleDoc(t)

	data := &GLTFData{}
	if err := appendGLTFPrimitive(doc, prim, data); err != nil {
		t.Fatalf("appendGLTFPrimitive() error = %v", err)
	}

	if len(data.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(data.Vertices))
	}
	if len(data.Faces) != 3 {
		t.Fatalf("expected 3 face indices, got %d", len(data.Faces))
	}
	want := [3]float64{1, 0, 0}
	got := data.Vertices[1]
	if got.X != want[0] || got.Y != want[1] || got.Z != want[2] {
		t.Errorf("vertex 1 = %v, want %v", got, want)
	}
	if data.Faces[0] != 0 || data.Faces[1] != 1 || data.Faces[2] != 2 {
		t.Errorf("faces = %v, want [0 1 2]", data.Faces)
	}
}

func TestAppendGLTFPrimitive_NoIndicesAssumesSequential(t *testing.T) {
	doc, prim := buildTriangleDoc(t)
	prim.Indices = nil

	data := &GLTFData{}
	if err := appendGLTFPrimitive(doc, prim, data); err != nil {
		t.Fatalf("appendGLTFPrimitive() error = %v", err)
	}
	if len(data.Faces) != 3 {
		t.Fatalf("expected 3 sequential face indices, got %d", len(data.Faces))
	}
	for i, idx := range data.Faces {
		if idx != i {
			t.Errorf("faces[%d] = %d, want %d", i, idx, i)
		}
	}
}

func TestAppendGLTFPrimitive_MissingPositionErrors(t *testing.T) {
	doc, prim := buildTriangleDoc(t)
	prim.Attributes = gltf.Attribute{}

	if err := appendGLTFPrimitive(doc, prim, &GLTFData{}); err == nil {
		t.Fatal("expected an error when POSITION attribute is missing")
	}
}

func TestReadGLTFIndices_ComponentTypes(t *testing.T) {
	doc, _ := buildTriangleDoc(t)

	got, err := readGLTFIndices(doc, 1)
	if err != nil {
		t.Fatalf("readGLTFIndices() error = %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("indices = %v, want [0 1 2]", got)
	}
}

func TestGltfBufferViewStride_FallsBackToTightStride(t *testing.T) {
	doc, _ := buildTriangleDoc(t)
	accessor := doc.Accessors[0]

	if stride := gltfBufferViewStride(doc, accessor, 12); stride != 12 {
		t.Errorf("stride = %d, want 12 (no explicit ByteStride set)", stride)
	}

	doc.BufferViews[0].ByteStride = 16
	if stride := gltfBufferViewStride(doc, accessor, 12); stride != 16 {
		t.Errorf("stride = %d, want 16 (explicit ByteStride should win)", stride)
	}
}

func TestReadFloat32LE_RoundTrips(t *testing.T) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(3.5))
	if got := readFloat32LE(b); got != 3.5 {
		t.Errorf("readFloat32LE() = %v, want 3.5", got)
	}
}
