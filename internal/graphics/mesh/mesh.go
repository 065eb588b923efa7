package mesh

import (
	"fmt"
	"log/slog"

	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/light"
	"glmesh/internal/graphics/shader"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Material is what a mesh needs from the materials drawn on it.
type Material interface {
	shader.UniformSource
	Shader() shader.Shader
	HasDiffuseTexture() bool
	DrawCount(meshID string) int
	SetDrawCount(meshID string, n int)
	SetUniform(identity, name string, location int32)
	SetUp(dev device.Device, p *shader.Program)
	TearDown(dev device.Device)
}

// Camera supplies the view and projection of a draw.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	EyePosition() mgl32.Vec3
}

// State is the mesh lifecycle position.
type State int

const (
	Unprepared State = iota
	Prepared
	Drawing
)

func (s State) String() string {
	switch s {
	case Unprepared:
		return "unprepared"
	case Prepared:
		return "prepared"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LightSpace selects the coordinate space lit programs shade in.
type LightSpace = shader.LightSpace

const (
	LightSpaceLocal = shader.LightSpaceLocal
	LightSpaceView  = shader.LightSpaceView
)

// ParseLightSpace accepts "local" or "view".
func ParseLightSpace(s string) (LightSpace, error) {
	return shader.ParseLightSpace(s)
}

// binding is one interleaved vertex buffer with the vertex array
// describing it for a program's attribute locations.
type binding struct {
	layout    Layout
	locations []int32
	vbo       device.Buffer
	vao       device.VertexArray
}

func (b *binding) matches(l Layout, locations []int32) bool {
	if b.layout.String() != l.String() || len(b.locations) != len(locations) {
		return false
	}
	for i, loc := range locations {
		if b.locations[i] != loc {
			return false
		}
	}
	return true
}

// pointers enables and describes every attribute of the bound buffer.
func (b *binding) pointers(dev device.Device) {
	for i, loc := range b.locations {
		if loc < 0 {
			continue
		}
		dev.EnableVertexAttrib(loc)
		dev.VertexAttribPointer(loc, b.layout.Components[i], b.layout.Stride, b.layout.Offsets[i])
	}
}

// slot is one draw of the mesh: a material, or the fallback shader when
// material is nil.
type slot struct {
	material   Material
	program    *shader.Program
	binding    *binding
	ibo        device.Buffer
	indexCount int32
}

// Mesh owns vertex data and the GPU resources built from it, and draws it
// with zero or more materials. When there are no materials the fallback
// shader draws the whole mesh.
type Mesh struct {
	id         string
	dev        device.Device
	fallback   shader.Shader
	data       *VertexData
	primitive  device.Primitive
	materials  []Material
	lightSpace LightSpace

	bindings []*binding
	slots    []slot
	dirty    bool
	state    State
}

// New returns an empty mesh drawing on dev.
func New(dev device.Device, fallback shader.Shader) *Mesh {
	return &Mesh{
		id:        uuid.NewString(),
		dev:       dev,
		fallback:  fallback,
		primitive: device.Triangles,
	}
}

func (m *Mesh) ID() string { return m.id }

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh(%s, %d vertices, %d materials, %s)", m.id[:8], m.vertexCount(), len(m.materials), m.state)
}

func (m *Mesh) vertexCount() int {
	if m.data == nil {
		return 0
	}
	return m.data.VertexCount()
}

// SetVertices attaches vertex data drawn as the given primitive. The data
// is read, never modified. Draw counts the materials hold for this mesh
// describe the old data and are cleared.
func (m *Mesh) SetVertices(data *VertexData, primitive device.Primitive) {
	m.data = data
	m.primitive = primitive
	m.dirty = true
	for _, mat := range m.materials {
		mat.SetDrawCount(m.id, 0)
	}
}

// SetMaterials replaces the material list. Material i draws sub-mesh i.
func (m *Mesh) SetMaterials(materials ...Material) {
	m.materials = append([]Material(nil), materials...)
	m.dirty = true
}

func (m *Mesh) Materials() []Material { return m.materials }

// SetLightSpace selects the space lit programs shade in. Changing it
// marks the mesh dirty since the programs differ.
func (m *Mesh) SetLightSpace(s LightSpace) {
	if s != m.lightSpace {
		m.lightSpace = s
		m.dirty = true
	}
}

func (m *Mesh) LightSpace() LightSpace { return m.lightSpace }

func (m *Mesh) Primitive() device.Primitive { return m.primitive }

// Dirty reports whether GPU resources are stale.
func (m *Mesh) Dirty() bool { return m.dirty }

func (m *Mesh) State() State { return m.state }

// Prepare resolves programs for camera presence and lights, then uploads
// vertex and index buffers laid out for them. Previous resources are
// released first.
func (m *Mesh) Prepare(cameraPresent bool, lights []light.Light) error {
	if m.data == nil {
		return fmt.Errorf("%s: %w", m.id, ErrNoVertices)
	}
	if err := m.data.Validate(); err != nil {
		return fmt.Errorf("%s: %w", m.id, err)
	}
	m.release()

	lights = light.OrDefault(lights)
	slots := make([]slot, 0, max(1, len(m.materials)))
	if len(m.materials) == 0 {
		slots = append(slots, slot{})
	}
	for _, mat := range m.materials {
		slots = append(slots, slot{material: mat})
	}

	for i := range slots {
		if err := m.prepareSlot(i, &slots[i], cameraPresent, lights); err != nil {
			m.slots = slots[:i+1]
			m.release()
			return fmt.Errorf("%s: slot %d: %w", m.id, i, err)
		}
	}
	m.slots = slots

	if len(m.materials) == 1 {
		mat := m.materials[0]
		if mat.DrawCount(m.id) == 0 {
			n := m.data.VertexCount()
			if len(m.data.Indices) > 0 {
				n = len(m.data.Indices[0])
			}
			mat.SetDrawCount(m.id, n)
		}
	}
	for i, s := range m.slots {
		if s.material == nil || s.ibo == 0 {
			continue
		}
		if n := s.material.DrawCount(m.id); n > int(s.indexCount) {
			m.release()
			return fmt.Errorf("%s: slot %d: %w (draw count %d, %d indices)", m.id, i, ErrDrawCountRange, n, s.indexCount)
		}
	}

	m.dirty = false
	m.state = Prepared
	slog.Debug("mesh prepared", "mesh", m.id, "slots", len(m.slots), "buffers", len(m.bindings))
	return nil
}

func (m *Mesh) prepareSlot(i int, s *slot, cameraPresent bool, lights []light.Light) error {
	sh := m.fallback
	if s.material != nil && s.material.Shader() != nil {
		sh = s.material.Shader()
	}
	if sh == nil {
		return fmt.Errorf("no shader")
	}

	p, err := sh.Program(NeededAttributes(m.data, s.material), cameraPresent, lights, m.lightSpace)
	if err != nil {
		return err
	}
	s.program = p

	if s.material != nil {
		for _, name := range p.CustomUniforms() {
			loc, _ := p.Uniform(name)
			s.material.SetUniform(p.Identity(), name, loc)
		}
	}

	b, err := m.bindingFor(p)
	if err != nil {
		return err
	}
	s.binding = b

	if i < len(m.data.Indices) {
		indices := m.data.Indices[i]
		ibo, err := m.dev.CreateBuffer()
		if err != nil {
			return err
		}
		s.ibo = ibo
		s.indexCount = int32(len(indices))
		m.dev.BindVertexArray(b.vao)
		m.dev.BindElementBuffer(ibo)
		m.dev.UploadIndexBuffer(indices)
		m.dev.BindVertexArray(0)
	}
	return nil
}

// bindingFor returns the buffer laid out in the program's attribute order,
// sharing it with earlier slots whose layout and locations match.
func (m *Mesh) bindingFor(p *shader.Program) (*binding, error) {
	attributes := p.Attributes()
	layout := NewLayout(m.data, attributes)
	locations := make([]int32, len(attributes))
	for i, name := range attributes {
		loc, ok := p.AttribLocation(name)
		if !ok {
			loc = -1
		}
		locations[i] = loc
	}

	for _, b := range m.bindings {
		if b.matches(layout, locations) {
			return b, nil
		}
	}

	b := &binding{layout: layout, locations: locations}
	m.bindings = append(m.bindings, b)

	var err error
	if b.vbo, err = m.dev.CreateBuffer(); err != nil {
		return nil, err
	}
	m.dev.BindArrayBuffer(b.vbo)
	m.dev.UploadFloatBuffer(Interleave(m.data, layout))

	if b.vao, err = m.dev.CreateVertexArray(); err != nil {
		return nil, err
	}
	m.dev.BindVertexArray(b.vao)
	m.dev.BindArrayBuffer(b.vbo)
	b.pointers(m.dev)
	m.dev.BindVertexArray(0)
	m.dev.BindArrayBuffer(0)
	return b, nil
}

func (m *Mesh) release() {
	for _, s := range m.slots {
		if s.ibo != 0 {
			m.dev.DeleteBuffer(s.ibo)
		}
	}
	for _, b := range m.bindings {
		if b.vao != 0 {
			m.dev.DeleteVertexArray(b.vao)
		}
		if b.vbo != 0 {
			m.dev.DeleteBuffer(b.vbo)
		}
	}
	m.slots = nil
	m.bindings = nil
	m.state = Unprepared
}

// Dispose releases every GPU resource the mesh owns. Programs belong to
// the shader library and are left alone.
func (m *Mesh) Dispose() {
	m.release()
	m.dirty = m.data != nil
}
