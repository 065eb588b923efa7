package shader

import (
	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/light"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader hands out programs specialized for an attribute set, camera
// presence and light list. Lit shaders also honour the requested light
// space; the returned program reports the space it actually shades in.
type Shader interface {
	Program(attributes []string, cameraPresent bool, lights []light.Light, space LightSpace) (*Program, error)
}

// UniformSource is the material state custom uniform hooks read. Uniform
// looks up locations cached per program identity.
type UniformSource interface {
	Uniform(identity, name string) (int32, bool)
	DiffuseColor() mgl32.Vec4
	SpecularColor() mgl32.Vec4
	AmbientColor() mgl32.Vec4
}

// UniformSetter is implemented by shaders with parameters of their own.
type UniformSetter interface {
	SetUniforms(dev device.Device, p *Program, src UniformSource)
}

// Simple is the unlit fallback used by meshes without materials.
type Simple struct {
	lib *Library
}

func NewSimple(lib *Library) *Simple {
	return &Simple{lib: lib}
}

func (s *Simple) Program(attributes []string, cameraPresent bool, lights []light.Light, space LightSpace) (*Program, error) {
	return s.lib.ProgramIn(SimpleVariant, attributes, cameraPresent, lights, space)
}

// Decal renders base colour, vertex colour and the diffuse texture.
type Decal struct {
	lib *Library
}

func NewDecal(lib *Library) *Decal {
	return &Decal{lib: lib}
}

func (s *Decal) Program(attributes []string, cameraPresent bool, lights []light.Light, space LightSpace) (*Program, error) {
	return s.lib.ProgramIn(DecalVariant, attributes, cameraPresent, lights, space)
}

func (s *Decal) SetUniforms(dev device.Device, p *Program, src UniformSource) {
	setDecalUniforms(dev, p, src)
}

func setDecalUniforms(dev device.Device, p *Program, src UniformSource) {
	if loc, ok := src.Uniform(p.Identity(), UniformBaseColor); ok {
		c := src.DiffuseColor()
		dev.Uniform4f(loc, c[0], c[1], c[2], c[3])
	}
}

// Phong adds ambient, diffuse and specular lighting to Decal.
type Phong struct {
	lib *Library

	Power              float32
	EfficiencyAmbient  float32
	EfficiencyDiffuse  float32
	EfficiencySpecular float32
}

func NewPhong(lib *Library) *Phong {
	return &Phong{
		lib:                lib,
		Power:              64.0,
		EfficiencyAmbient:  1.0,
		EfficiencyDiffuse:  1.0,
		EfficiencySpecular: 1.0,
	}
}

func (s *Phong) Program(attributes []string, cameraPresent bool, lights []light.Light, space LightSpace) (*Program, error) {
	return s.lib.ProgramIn(PhongVariant, attributes, cameraPresent, lights, space)
}

func (s *Phong) SetUniforms(dev device.Device, p *Program, src UniformSource) {
	setDecalUniforms(dev, p, src)

	id := p.Identity()
	vec4 := func(name string, v mgl32.Vec4) {
		if loc, ok := src.Uniform(id, name); ok {
			dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
		}
	}
	float := func(name string, v float32) {
		if loc, ok := src.Uniform(id, name); ok {
			dev.Uniform1f(loc, v)
		}
	}

	vec4("Ka", src.AmbientColor())
	vec4("Kd", src.DiffuseColor())
	vec4("Ks", src.SpecularColor())
	float("power", s.Power)
	float("efficiencyAmbient", s.EfficiencyAmbient)
	float("efficiencyDiffuse", s.EfficiencyDiffuse)
	float("efficiencySpecular", s.EfficiencySpecular)
}

var (
	_ Shader        = (*Simple)(nil)
	_ UniformSetter = (*Decal)(nil)
	_ UniformSetter = (*Phong)(nil)
)
