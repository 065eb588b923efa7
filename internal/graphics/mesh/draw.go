package mesh

import (
	"fmt"

	"glmesh/internal/graphics/light"
	"glmesh/internal/graphics/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// forward stands in for the eye when there is no camera.
var forward = mgl32.Vec3{0, 0, 1}

// Draw issues one draw call per slot. cam may be nil. With no lights a
// single default point light is shaded.
func (m *Mesh) Draw(lights []light.Light, cam Camera, transform mgl32.Mat4) error {
	if m.state != Prepared {
		return fmt.Errorf("%s: %w (state %s)", m.id, ErrNotPrepared, m.state)
	}
	lights = light.OrDefault(lights)

	m.state = Drawing
	defer func() { m.state = Prepared }()

	var bound *binding
	for _, s := range m.slots {
		if s.binding != bound {
			if !m.dev.BindVertexArray(s.binding.vao) {
				m.dev.BindArrayBuffer(s.binding.vbo)
				s.binding.pointers(m.dev)
			}
			bound = s.binding
		}

		m.dev.UseProgram(s.program.Handle())
		m.setTransformUniforms(s.program, cam, transform)
		m.setLightUniforms(s.program, lights, cam, transform)

		if s.material != nil {
			if setter, ok := s.material.Shader().(shader.UniformSetter); ok {
				setter.SetUniforms(m.dev, s.program, s.material)
			}
			s.material.SetUp(m.dev, s.program)
		}

		if s.ibo != 0 {
			m.dev.BindElementBuffer(s.ibo)
			m.dev.DrawElements(m.primitive, m.drawCount(s))
		} else {
			m.dev.DrawArrays(m.primitive, 0, int32(m.data.VertexCount()))
		}

		if s.material != nil {
			s.material.TearDown(m.dev)
		}
	}

	m.dev.BindVertexArray(0)
	m.dev.BindArrayBuffer(0)
	m.dev.BindElementBuffer(0)
	m.dev.UseProgram(0)

	if err := m.dev.Err(); err != nil {
		return fmt.Errorf("%s: draw: %w", m.id, err)
	}
	return nil
}

// drawCount is the material's override, or the slot's index count when
// unset.
func (m *Mesh) drawCount(s slot) int32 {
	if s.material != nil {
		if n := s.material.DrawCount(m.id); n > 0 {
			return int32(n)
		}
	}
	return s.indexCount
}

func (m *Mesh) setTransformUniforms(p *shader.Program, cam Camera, transform mgl32.Mat4) {
	view := mgl32.Ident4()
	if cam != nil {
		view = cam.ViewMatrix()
		if loc, ok := p.Uniform(shader.UniformModelViewProjection); ok {
			// mgl32 stores column-major, which is what the device expects.
			mvp := cam.ProjectionMatrix().Mul4(view).Mul4(transform)
			m.dev.UniformMatrix4(loc, mvp)
		}
	}

	// The normal matrix is the inverse transpose of the model-view 3x3.
	modelView := view.Mul4(transform)
	if loc, ok := p.Uniform(shader.UniformModelView); ok {
		m.dev.UniformMatrix4(loc, modelView)
	}
	if loc, ok := p.Uniform(shader.UniformNormalMatrix); ok {
		m.dev.UniformMatrix3(loc, modelView.Mat3().Inv().Transpose())
	}

	if loc, ok := p.Uniform(shader.UniformViewPosition); ok {
		eye := forward
		if cam != nil {
			eye = cam.EyePosition()
		}
		local := transform.Mat3().Inv().Mul3x1(eye)
		m.dev.Uniform3f(loc, local[0], local[1], local[2])
	}
}

// setLightUniforms uploads each light the program has a slot for, in the
// space the program shades in. The w component keeps the light's kind
// whatever space the vector ends up in.
func (m *Mesh) setLightUniforms(p *shader.Program, lights []light.Light, cam Camera, transform mgl32.Mat4) {
	var space mgl32.Mat4
	switch p.LightSpace() {
	case LightSpaceView:
		space = mgl32.Ident4()
		if cam != nil {
			space = cam.ViewMatrix()
		}
	default:
		space = transform.Inv()
	}

	for i, l := range lights {
		slot, ok := p.LightSlot(i)
		if !ok {
			continue
		}
		v := l.Encode()
		pos := space.Mul4x1(v)
		m.dev.Uniform4f(slot.Position, pos[0], pos[1], pos[2], v[3])
		d := l.Diffuse()
		m.dev.Uniform4f(slot.Diffuse, d[0], d[1], d[2], d[3])
	}
}
