package config

import (
	"fmt"
	"os"
	"slices"

	"glmesh/internal/graphics/light"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Shapes and shaders a viewer model may name.
var (
	Shapes  = []string{"triangle", "plane", "cube", "split-cube"}
	Shaders = []string{"simple", "decal", "phong"}
)

// Viewer describes a meshview scene.
type Viewer struct {
	Window     WindowConfig  `yaml:"window"`
	Camera     CameraConfig  `yaml:"camera"`
	LightSpace string        `yaml:"lightSpace,omitempty"`
	FPSLimit   *int          `yaml:"fpsLimit,omitempty"` // 0 is unlimited, absent is 60
	Lights     []LightConfig `yaml:"lights,omitempty"`
	Models     []ModelConfig `yaml:"models"`
}

type WindowConfig struct {
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Title  string `yaml:"title,omitempty"`
	VSync  bool   `yaml:"vsync,omitempty"`
}

type CameraConfig struct {
	Disabled bool       `yaml:"disabled,omitempty"`
	Eye      [3]float32 `yaml:"eye,flow"`
	Center   [3]float32 `yaml:"center,flow"`
	FOV      float32    `yaml:"fov,omitempty"`
	Orbit    float32    `yaml:"orbit,omitempty"` // radians per second
}

type LightConfig struct {
	Kind      string     `yaml:"kind"`
	Position  [3]float32 `yaml:"position,flow,omitempty"`
	Direction [3]float32 `yaml:"direction,flow,omitempty"`
	Intensity [3]float32 `yaml:"intensity,flow,omitempty"`
}

type ModelConfig struct {
	Name      string           `yaml:"name,omitempty"`
	Shape     string           `yaml:"shape"`
	Position  [3]float32       `yaml:"position,flow,omitempty"`
	Scale     float32          `yaml:"scale,omitempty"`
	Spin      float32          `yaml:"spin,omitempty"` // radians per second
	Materials []MaterialConfig `yaml:"materials,omitempty"`
}

type MaterialConfig struct {
	Shader  string     `yaml:"shader"`
	Texture string     `yaml:"texture,omitempty"`
	Color   [4]float32 `yaml:"color,flow,omitempty"`
	Power   float32    `yaml:"power,omitempty"`
}

// DefaultViewer is the scene shown without a config file.
func DefaultViewer() Viewer {
	v := Viewer{
		Models: []ModelConfig{
			{Name: "cube", Shape: "split-cube", Spin: 0.6, Materials: []MaterialConfig{
				{Shader: "phong", Color: [4]float32{0.9, 0.4, 0.3, 1}},
				{Shader: "decal", Color: [4]float32{0.3, 0.6, 0.9, 1}},
			}},
			{Name: "floor", Shape: "plane", Position: [3]float32{0, -1.5, 0}, Scale: 4, Materials: []MaterialConfig{
				{Shader: "phong"},
			}},
		},
		Lights: []LightConfig{
			{Kind: "point", Position: [3]float32{3, 4, 5}},
			{Kind: "directional", Direction: [3]float32{-0.3, -1, -0.2}, Intensity: [3]float32{0.3, 0.3, 0.3}},
		},
	}
	v.normalize()
	return v
}

func (v *Viewer) normalize() {
	if v.Window.Width == 0 {
		v.Window.Width = 1024
	}
	if v.Window.Height == 0 {
		v.Window.Height = 768
	}
	if v.Window.Title == "" {
		v.Window.Title = "meshview"
	}
	if v.Camera.Eye == ([3]float32{}) {
		v.Camera.Eye = [3]float32{0, 2, 6}
	}
	if v.Camera.FOV == 0 {
		v.Camera.FOV = 60
	}
	if v.LightSpace == "" {
		v.LightSpace = LightSpaceLocal
	}
	if v.FPSLimit == nil {
		fps := 60
		v.FPSLimit = &fps
	}
	for i := range v.Lights {
		if v.Lights[i].Intensity == ([3]float32{}) {
			v.Lights[i].Intensity = [3]float32{1, 1, 1}
		}
	}
	for i := range v.Models {
		m := &v.Models[i]
		if m.Scale == 0 {
			m.Scale = 1
		}
		for j := range m.Materials {
			if m.Materials[j].Color == ([4]float32{}) {
				m.Materials[j].Color = [4]float32{1, 1, 1, 1}
			}
		}
	}
}

func (v *Viewer) validate() error {
	if v.Window.Width < 0 || v.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d", v.Window.Width, v.Window.Height)
	}
	if v.LightSpace != LightSpaceLocal && v.LightSpace != LightSpaceView {
		return fmt.Errorf("unknown light space %q", v.LightSpace)
	}
	if v.FPSLimit != nil && *v.FPSLimit < 0 {
		return fmt.Errorf("negative fps limit %d", *v.FPSLimit)
	}
	for i, l := range v.Lights {
		if _, err := light.ParseKind(l.Kind); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	if len(v.Models) == 0 {
		return fmt.Errorf("no models")
	}
	for i, m := range v.Models {
		if !slices.Contains(Shapes, m.Shape) {
			return fmt.Errorf("model %d: unknown shape %q", i, m.Shape)
		}
		for j, mat := range m.Materials {
			if !slices.Contains(Shaders, mat.Shader) {
				return fmt.Errorf("model %d material %d: unknown shader %q", i, j, mat.Shader)
			}
		}
	}
	return nil
}

// LoadViewer reads, normalizes and validates a viewer YAML file.
func LoadViewer(path string) (Viewer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Viewer{}, fmt.Errorf("read %s: %w", path, err)
	}

	var v Viewer
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Viewer{}, fmt.Errorf("parse %s: %w", path, err)
	}
	v.normalize()
	if err := v.validate(); err != nil {
		return Viewer{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return v, nil
}

// Apply copies the runtime settings of v into the global render settings.
func (v Viewer) Apply() error {
	if err := SetLightSpace(v.LightSpace); err != nil {
		return err
	}
	if v.FPSLimit != nil {
		SetFPSLimit(*v.FPSLimit)
	}
	SetCameraEnabled(!v.Camera.Disabled)
	return nil
}

// Light converts the config into a scene light.
func (c LightConfig) Light() (light.Light, error) {
	kind, err := light.ParseKind(c.Kind)
	if err != nil {
		return light.Light{}, err
	}
	intensity := mgl32.Vec3(c.Intensity)
	switch kind {
	case light.Directional:
		return light.NewDirectional(mgl32.Vec3(c.Direction), intensity), nil
	default:
		return light.NewPoint(mgl32.Vec3(c.Position), intensity), nil
	}
}

// SceneLights converts every configured light.
func (v Viewer) SceneLights() ([]light.Light, error) {
	out := make([]light.Light, 0, len(v.Lights))
	for i, c := range v.Lights {
		l, err := c.Light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}
