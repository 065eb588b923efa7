package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glmesh/internal/graphics/light"

	"github.com/go-gl/mathgl/mgl32"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadViewer(t *testing.T) {
	path := writeFile(t, `
window:
  width: 640
camera:
  eye: [1, 2, 3]
lightSpace: view
lights:
  - kind: directional
    direction: [0, -1, 0]
models:
  - shape: cube
    spin: 0.5
    materials:
      - shader: phong
        texture: crate.png
      - shader: decal
        color: [1, 0, 0, 1]
`)
	v, err := LoadViewer(path)
	if err != nil {
		t.Fatalf("LoadViewer: %v", err)
	}
	if v.Window.Width != 640 || v.Window.Height != 768 || v.Window.Title != "meshview" {
		t.Errorf("window = %+v", v.Window)
	}
	if v.Camera.Eye != [3]float32{1, 2, 3} || v.Camera.FOV != 60 {
		t.Errorf("camera = %+v", v.Camera)
	}
	if v.LightSpace != LightSpaceView || v.FPSLimit == nil || *v.FPSLimit != 60 {
		t.Errorf("lightSpace = %q fps = %v", v.LightSpace, v.FPSLimit)
	}
	m := v.Models[0]
	if m.Scale != 1 || len(m.Materials) != 2 {
		t.Fatalf("model = %+v", m)
	}
	if m.Materials[0].Color != [4]float32{1, 1, 1, 1} || m.Materials[0].Texture != "crate.png" {
		t.Errorf("material 0 = %+v", m.Materials[0])
	}
	if m.Materials[1].Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("material 1 = %+v", m.Materials[1])
	}

	lights, err := v.SceneLights()
	if err != nil {
		t.Fatal(err)
	}
	want := light.NewDirectional(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 1, 1})
	if len(lights) != 1 || lights[0] != want {
		t.Errorf("lights = %+v", lights)
	}
}

func TestLoadViewerRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no models", "window: {width: 10}\n", "no models"},
		{"bad shape", "models:\n  - shape: teapot\n", "unknown shape"},
		{"bad shader", "models:\n  - shape: cube\n    materials:\n      - shader: toon\n", "unknown shader"},
		{"bad light", "lights:\n  - kind: spot\nmodels:\n  - shape: cube\n", "unknown light kind"},
		{"bad space", "lightSpace: world\nmodels:\n  - shape: cube\n", "unknown light space"},
		{"bad fps", "fpsLimit: -5\nmodels:\n  - shape: cube\n", "negative fps limit"},
		{"bad yaml", "models: [\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadViewer(writeFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("LoadViewer = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadViewerUnlimitedFPS(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())

	v, err := LoadViewer(writeFile(t, "fpsLimit: 0\nmodels:\n  - shape: cube\n"))
	if err != nil {
		t.Fatal(err)
	}
	if v.FPSLimit == nil || *v.FPSLimit != 0 {
		t.Fatalf("fpsLimit = %v, want an explicit 0", v.FPSLimit)
	}
	if err := v.Apply(); err != nil {
		t.Fatal(err)
	}
	if GetFPSLimit() != 0 {
		t.Errorf("GetFPSLimit = %d, want unlimited", GetFPSLimit())
	}
}

func TestDefaultViewerIsValid(t *testing.T) {
	v := DefaultViewer()
	if err := v.validate(); err != nil {
		t.Fatalf("default viewer invalid: %v", err)
	}
	if _, err := v.SceneLights(); err != nil {
		t.Fatal(err)
	}
}

func TestSettings(t *testing.T) {
	defer SetLightSpace(GetLightSpace())
	defer SetFPSLimit(GetFPSLimit())
	defer SetCameraEnabled(GetCameraEnabled())

	if err := SetLightSpace("VIEW"); err != nil || GetLightSpace() != LightSpaceView {
		t.Fatalf("SetLightSpace: %v, got %q", err, GetLightSpace())
	}
	if err := SetLightSpace("world"); err == nil {
		t.Error("expected error for unknown light space")
	}
	if ToggleLightSpace() != LightSpaceLocal {
		t.Error("toggle from view must give local")
	}

	for in, want := range map[int]int{-5: 0, 0: 0, 3: 10, 144: 144, 9000: 500} {
		SetFPSLimit(in)
		if got := GetFPSLimit(); got != want {
			t.Errorf("SetFPSLimit(%d) -> %d, want %d", in, got, want)
		}
	}

	v := DefaultViewer()
	v.Camera.Disabled = true
	fps := 30
	v.FPSLimit = &fps
	if err := v.Apply(); err != nil {
		t.Fatal(err)
	}
	if GetCameraEnabled() || GetFPSLimit() != 30 || GetLightSpace() != LightSpaceLocal {
		t.Error("Apply did not copy the settings")
	}
}
