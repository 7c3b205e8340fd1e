package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMainTestPBRT(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "main_test_*.pbrt")
	if err != nil {
		t.Fatalf("failed to create temp PBRT file: %v", err)
	}
	content := `
WorldBegin
Material "diffuse" "rgb reflectance" [0.7 0.7 0.7]
Shape "sphere" "float radius" 1.0
LightSource "infinite" "rgb L" [1 1 1]
WorldEnd
`
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("failed to write temp PBRT file: %v", err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestBuildScene_BuiltIns(t *testing.T) {
	tests := []struct {
		name      string
		sceneName string
	}{
		{"default scene", "default"},
		{"cornell scene", "cornell"},
		{"spheregrid scene", "spheregrid"},
		{"trianglemesh scene", "trianglemesh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := buildScene(tt.sceneName)
			if err != nil {
				t.Fatalf("buildScene(%q) error = %v", tt.sceneName, err)
			}
			if s == nil {
				t.Fatalf("buildScene(%q) returned a nil scene", tt.sceneName)
			}
			if s.Config.Width <= 0 || s.Config.Height <= 0 {
				t.Errorf("expected a positive resolution, got %dx%d", s.Config.Width, s.Config.Height)
			}
		})
	}
}

func TestBuildScene_UnknownNameErrors(t *testing.T) {
	if _, err := buildScene("nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown scene name")
	}
}

func TestBuildScene_PBRTFilePath(t *testing.T) {
	path := writeMainTestPBRT(t)
	s, err := buildScene(path)
	if err != nil {
		t.Fatalf("buildScene(%q) error = %v", path, err)
	}
	if len(s.Lights) == 0 {
		t.Error("expected the infinite light from the PBRT fixture to be present")
	}
}

func TestResolvePBRTPath(t *testing.T) {
	path := writeMainTestPBRT(t)

	resolved, ok := resolvePBRTPath(path)
	if !ok || resolved != path {
		t.Fatalf("resolvePBRTPath(%q) = (%q, %v), want (%q, true)", path, resolved, ok, path)
	}

	if _, ok := resolvePBRTPath("default"); ok {
		t.Error("expected a built-in scene name not to resolve as a PBRT path")
	}
	if _, ok := resolvePBRTPath("scenes/does-not-exist.pbrt"); ok {
		t.Error("expected a missing PBRT path not to resolve")
	}
}

func TestPrintScenes_ListsBuiltIns(t *testing.T) {
	var buf bytes.Buffer
	if err := printScenes(&buf); err != nil {
		t.Fatalf("printScenes() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Built-in Scenes:") {
		t.Errorf("expected a Built-in Scenes group header, got:\n%s", out)
	}
	for _, name := range []string{"default", "cornell", "spheregrid", "trianglemesh"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected printScenes() output to list %q, got:\n%s", name, out)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name         string
		sceneName    string
		expectedBase string
	}{
		{"built-in name", "cornell", "cornell"},
		{"direct pbrt path", "scenes/cornell-empty.pbrt", "cornell-empty"},
		{"nested pbrt path", "scenes/subdir/my-scene.pbrt", "my-scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := defaultOutputPath(tt.sceneName)
			if !strings.HasPrefix(out, "output"+string(filepath.Separator)) {
				t.Errorf("expected output path to start under output/, got %q", out)
			}
			dir := filepath.Base(filepath.Dir(out))
			if dir != tt.expectedBase {
				t.Errorf("expected output directory %q, got %q (full path %q)", tt.expectedBase, dir, out)
			}
		})
	}
}
