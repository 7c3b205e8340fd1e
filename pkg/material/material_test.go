package material

import (
	"testing"

	"github.com/lumenray/tracer/pkg/core"
)

func TestDefaultRegistry_BuildsKnownKinds(t *testing.T) {
	r := DefaultRegistry()
	for _, kind := range []string{"diffuse", "mirror", "refraction", "glass", "emissive"} {
		b, ok := r.Build(Desc{Kind: kind, Albedo: core.NewVec3(1, 1, 1), IOR: 1.5})
		if !ok {
			t.Fatalf("expected kind %q to build", kind)
		}
		if b == nil {
			t.Fatalf("kind %q built a nil BSDF", kind)
		}
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	r := DefaultRegistry()
	if _, ok := r.Build(Desc{Kind: "nonexistent"}); ok {
		t.Fatalf("expected unknown kind to fail")
	}
}
