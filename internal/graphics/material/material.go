package material

import (
	"fmt"

	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/shader"
	"glmesh/internal/graphics/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// DiffuseUnit is the texture unit the diffuse texture is bound to.
const DiffuseUnit = 0

// Material pairs a shader with the surface parameters it reads. Uniform
// locations are cached per program identity so one material can serve
// every program its shader specializes.
type Material struct {
	Name string

	shader         shader.Shader
	diffuseTexture *texture.Texture

	diffuseColor  mgl32.Vec4
	specularColor mgl32.Vec4
	ambientColor  mgl32.Vec4

	uniforms   map[string]map[string]int32
	drawCounts map[string]int
}

// New returns a white material rendered with s.
func New(s shader.Shader) *Material {
	return &Material{
		shader:        s,
		diffuseColor:  mgl32.Vec4{1, 1, 1, 1},
		specularColor: mgl32.Vec4{0.5, 0.5, 0.5, 1},
		ambientColor:  mgl32.Vec4{0.25, 0.25, 0.25, 1},
		uniforms:      make(map[string]map[string]int32),
		drawCounts:    make(map[string]int),
	}
}

func (m *Material) String() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("material(%T)", m.shader)
}

func (m *Material) Shader() shader.Shader { return m.shader }

func (m *Material) SetShader(s shader.Shader) {
	m.shader = s
	m.uniforms = make(map[string]map[string]int32)
}

func (m *Material) DiffuseTexture() *texture.Texture { return m.diffuseTexture }

func (m *Material) SetDiffuseTexture(t *texture.Texture) { m.diffuseTexture = t }

// HasDiffuseTexture reports whether texture coordinates are needed.
func (m *Material) HasDiffuseTexture() bool { return m.diffuseTexture != nil }

func (m *Material) DiffuseColor() mgl32.Vec4  { return m.diffuseColor }
func (m *Material) SpecularColor() mgl32.Vec4 { return m.specularColor }
func (m *Material) AmbientColor() mgl32.Vec4  { return m.ambientColor }

func (m *Material) SetDiffuseColor(c mgl32.Vec4)  { m.diffuseColor = c }
func (m *Material) SetSpecularColor(c mgl32.Vec4) { m.specularColor = c }
func (m *Material) SetAmbientColor(c mgl32.Vec4)  { m.ambientColor = c }

// DrawCount returns the vertex or index count drawn for meshID, 0 if unset.
func (m *Material) DrawCount(meshID string) int { return m.drawCounts[meshID] }

// SetDrawCount overrides the count drawn for meshID. n <= 0 clears it.
func (m *Material) SetDrawCount(meshID string, n int) {
	if n <= 0 {
		delete(m.drawCounts, meshID)
		return
	}
	m.drawCounts[meshID] = n
}

// SetUniform caches a uniform location for the program with the given
// identity.
func (m *Material) SetUniform(identity, name string, location int32) {
	locs, ok := m.uniforms[identity]
	if !ok {
		locs = make(map[string]int32)
		m.uniforms[identity] = locs
	}
	locs[name] = location
}

// Uniform returns a cached location. Locations the program does not
// expose are reported missing.
func (m *Material) Uniform(identity, name string) (int32, bool) {
	loc, ok := m.uniforms[identity][name]
	if !ok || loc < 0 {
		return -1, false
	}
	return loc, true
}

// SetUp binds the diffuse texture and points the sampler at its unit.
func (m *Material) SetUp(dev device.Device, p *shader.Program) {
	if m.diffuseTexture == nil {
		return
	}
	dev.BindTexture(DiffuseUnit, m.diffuseTexture.ID)
	if loc, ok := m.Uniform(p.Identity(), shader.UniformDiffuseTexture); ok {
		dev.Uniform1i(loc, DiffuseUnit)
	}
}

// TearDown releases what SetUp bound.
func (m *Material) TearDown(dev device.Device) {
	if m.diffuseTexture == nil {
		return
	}
	dev.BindTexture(DiffuseUnit, 0)
}
