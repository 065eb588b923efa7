package shader

import (
	"glmesh/internal/graphics/device"
)

// Uniform names every variant may expose. A program that does not use one
// of them reports it as missing and the upload is skipped.
const (
	UniformModelViewProjection = "modelViewProjectionMatrix"
	UniformViewPosition        = "viewPosition"
	UniformModelView           = "modelViewMatrix"
	UniformNormalMatrix        = "invNormalMatrix"
	UniformBaseColor           = "materialBaseColor"
	UniformDiffuseTexture      = "diffuseTexture"
)

// LightSlot holds the uniform locations of one light index.
type LightSlot struct {
	Position int32
	Diffuse  int32
}

// Program is a linked shader variant. Locations are resolved once at link
// time and looked up by semantic name afterwards.
type Program struct {
	handle     device.Program
	identity   string
	variant    string
	key        string
	space      LightSpace
	attributes []string
	attribs    map[string]int32
	uniforms   map[string]int32
	custom     []string
	lights     []LightSlot
}

// Handle is the device program object.
func (p *Program) Handle() device.Program { return p.handle }

// Identity is stable for a given specialization key.
func (p *Program) Identity() string { return p.identity }

// Variant names the descriptor the program was generated from.
func (p *Program) Variant() string { return p.variant }

// LightSpace is the space the program expects light vectors in.
func (p *Program) LightSpace() LightSpace { return p.space }

// Attributes returns the canonical attribute order the program was built
// for. Vertex buffers must be interleaved in this order.
func (p *Program) Attributes() []string {
	out := make([]string, len(p.attributes))
	copy(out, p.attributes)
	return out
}

// AttribLocation returns the input location of a vertex attribute.
func (p *Program) AttribLocation(name string) (int32, bool) {
	loc, ok := p.attribs[name]
	return loc, ok && loc >= 0
}

// Uniform returns the location of a named uniform.
func (p *Program) Uniform(name string) (int32, bool) {
	loc, ok := p.uniforms[name]
	return loc, ok && loc >= 0
}

// CustomUniforms lists the variant-specific uniforms that are active in
// the linked program.
func (p *Program) CustomUniforms() []string {
	out := make([]string, len(p.custom))
	copy(out, p.custom)
	return out
}

// LightSlot returns the uniforms of light i. ok is false unless both the
// position and the diffuse uniform are active.
func (p *Program) LightSlot(i int) (LightSlot, bool) {
	if i < 0 || i >= len(p.lights) {
		return LightSlot{}, false
	}
	s := p.lights[i]
	return s, s.Position >= 0 && s.Diffuse >= 0
}

// LightSlots is the number of lights the program was specialized for.
func (p *Program) LightSlots() int { return len(p.lights) }
