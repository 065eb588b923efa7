// Package devicetest provides a recording device.Device for tests that
// must observe GPU traffic without an OpenGL context.
package devicetest

import (
	"fmt"
	"image"
	"regexp"
	"strconv"

	"glmesh/internal/graphics/device"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)
	attribDecl  = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*in\s+\w+\s+(\w+)\s*;`)
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw captures the state a draw call was issued with.
type Draw struct {
	Mode          device.Primitive
	Indexed       bool
	First         int32
	Count         int32
	Program       device.Program
	VertexArray   device.VertexArray
	ArrayBuffer   device.Buffer
	ElementBuffer device.Buffer
}

// Pointer captures one VertexAttribPointer call.
type Pointer struct {
	Location    int32
	Components  int32
	Stride      int32
	Offset      int
	Buffer      device.Buffer
	VertexArray device.VertexArray
}

// Recorder implements device.Device in memory. Shader sources are scanned
// for uniform and explicitly located input declarations so location
// queries answer like a driver would: undeclared names yield -1.
type Recorder struct {
	// NoVertexArrays makes BindVertexArray report that the vertex layout
	// cannot be reused, forcing callers onto their rebind path.
	NoVertexArrays bool
	// CompileErr, when set, fails every CreateProgram call.
	CompileErr error
	// PendingErr is returned once by Err.
	PendingErr error

	Calls    []Call
	Draws    []Draw
	Pointers []Pointer
	Floats   map[device.Buffer][]float32
	Indices  map[device.Buffer][]uint16
	Sources  map[device.Program][2]string

	next          uint32
	arrayBuffer   device.Buffer
	elementBuffer device.Buffer
	vao           device.VertexArray
	program       device.Program
	textures      map[int]device.Texture

	buffers      map[device.Buffer]bool
	vertexArrays map[device.VertexArray]bool
	programs     map[device.Program]bool
	textureSet   map[device.Texture]bool

	uniformLocs map[device.Program]map[string]int32
	attribLocs  map[device.Program]map[string]int32
	values      map[device.Program]map[int32][]float32
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Floats:       make(map[device.Buffer][]float32),
		Indices:      make(map[device.Buffer][]uint16),
		Sources:      make(map[device.Program][2]string),
		textures:     make(map[int]device.Texture),
		buffers:      make(map[device.Buffer]bool),
		vertexArrays: make(map[device.VertexArray]bool),
		programs:     make(map[device.Program]bool),
		textureSet:   make(map[device.Texture]bool),
		uniformLocs:  make(map[device.Program]map[string]int32),
		attribLocs:   make(map[device.Program]map[string]int32),
		values:       make(map[device.Program]map[int32][]float32),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) CreateBuffer() (device.Buffer, error) {
	b := device.Buffer(r.handle())
	r.buffers[b] = true
	r.record("CreateBuffer", b)
	return b, nil
}

func (r *Recorder) BindArrayBuffer(b device.Buffer) {
	r.arrayBuffer = b
	r.record("BindArrayBuffer", b)
}

func (r *Recorder) BindElementBuffer(b device.Buffer) {
	r.elementBuffer = b
	r.record("BindElementBuffer", b)
}

func (r *Recorder) UploadFloatBuffer(data []float32) {
	r.Floats[r.arrayBuffer] = append([]float32(nil), data...)
	r.record("UploadFloatBuffer", r.arrayBuffer, len(data))
}

func (r *Recorder) UploadIndexBuffer(data []uint16) {
	r.Indices[r.elementBuffer] = append([]uint16(nil), data...)
	r.record("UploadIndexBuffer", r.elementBuffer, len(data))
}

func (r *Recorder) DeleteBuffer(b device.Buffer) {
	delete(r.buffers, b)
	r.record("DeleteBuffer", b)
}

func (r *Recorder) CreateVertexArray() (device.VertexArray, error) {
	vao := device.VertexArray(r.handle())
	r.vertexArrays[vao] = true
	r.record("CreateVertexArray", vao)
	return vao, nil
}

func (r *Recorder) BindVertexArray(vao device.VertexArray) bool {
	r.record("BindVertexArray", vao)
	if r.NoVertexArrays {
		r.vao = 0
		return false
	}
	r.vao = vao
	return vao != 0
}

func (r *Recorder) DeleteVertexArray(vao device.VertexArray) {
	delete(r.vertexArrays, vao)
	r.record("DeleteVertexArray", vao)
}

func (r *Recorder) EnableVertexAttrib(location int32) {
	r.record("EnableVertexAttrib", location)
}

func (r *Recorder) VertexAttribPointer(location, components, stride int32, offset int) {
	r.Pointers = append(r.Pointers, Pointer{
		Location:    location,
		Components:  components,
		Stride:      stride,
		Offset:      offset,
		Buffer:      r.arrayBuffer,
		VertexArray: r.vao,
	})
	r.record("VertexAttribPointer", location, components, stride, offset)
}

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string) (device.Program, error) {
	if r.CompileErr != nil {
		r.record("CreateProgram", 0)
		return 0, r.CompileErr
	}
	p := device.Program(r.handle())
	r.programs[p] = true
	r.Sources[p] = [2]string{vertexSrc, fragmentSrc}

	uniforms := make(map[string]int32)
	var next int32
	for _, src := range []string{vertexSrc, fragmentSrc} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if _, ok := uniforms[name]; ok {
				continue
			}
			uniforms[name] = next
			if m[2] == "" {
				next++
				continue
			}
			n, _ := strconv.Atoi(m[2])
			for i := 0; i < n; i++ {
				uniforms[fmt.Sprintf("%s[%d]", name, i)] = next
				next++
			}
		}
	}
	attribs := make(map[string]int32)
	for _, m := range attribDecl.FindAllStringSubmatch(vertexSrc, -1) {
		loc, _ := strconv.Atoi(m[1])
		attribs[m[2]] = int32(loc)
	}
	r.uniformLocs[p] = uniforms
	r.attribLocs[p] = attribs
	r.values[p] = make(map[int32][]float32)

	r.record("CreateProgram", p)
	return p, nil
}

func (r *Recorder) UseProgram(p device.Program) {
	r.program = p
	r.record("UseProgram", p)
}

func (r *Recorder) DeleteProgram(p device.Program) {
	delete(r.programs, p)
	r.record("DeleteProgram", p)
}

func (r *Recorder) AttribLocation(p device.Program, name string) int32 {
	if loc, ok := r.attribLocs[p][name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UniformLocation(p device.Program, name string) int32 {
	if loc, ok := r.uniformLocs[p][name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) setUniform(name string, location int32, v ...float32) {
	r.record(name, location, v)
	if location < 0 || r.program == 0 {
		return
	}
	r.values[r.program][location] = v
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.setUniform("Uniform1i", location, float32(v))
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.setUniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.setUniform("Uniform3f", location, x, y, z)
}

func (r *Recorder) Uniform4f(location int32, x, y, z, w float32) {
	r.setUniform("Uniform4f", location, x, y, z, w)
}

func (r *Recorder) UniformMatrix3(location int32, m mgl32.Mat3) {
	r.setUniform("UniformMatrix3", location, m[:]...)
}

func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) {
	r.setUniform("UniformMatrix4", location, m[:]...)
}

func (r *Recorder) CreateTexture(img *image.RGBA) (device.Texture, error) {
	t := device.Texture(r.handle())
	r.textureSet[t] = true
	r.record("CreateTexture", t, img.Rect.Dx(), img.Rect.Dy())
	return t, nil
}

func (r *Recorder) BindTexture(unit int, t device.Texture) {
	r.textures[unit] = t
	r.record("BindTexture", unit, t)
}

func (r *Recorder) DeleteTexture(t device.Texture) {
	delete(r.textureSet, t)
	r.record("DeleteTexture", t)
}

func (r *Recorder) DrawArrays(mode device.Primitive, first, count int32) {
	r.Draws = append(r.Draws, Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     r.program,
		VertexArray: r.vao,
		ArrayBuffer: r.arrayBuffer,
	})
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode device.Primitive, count int32) {
	r.Draws = append(r.Draws, Draw{
		Mode:          mode,
		Indexed:       true,
		Count:         count,
		Program:       r.program,
		VertexArray:   r.vao,
		ArrayBuffer:   r.arrayBuffer,
		ElementBuffer: r.elementBuffer,
	})
	r.record("DrawElements", mode, count)
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.record("Clear", color)
}

func (r *Recorder) Viewport(width, height int) {
	r.record("Viewport", width, height)
}

func (r *Recorder) Err() error {
	err := r.PendingErr
	r.PendingErr = nil
	return err
}

// Uniform returns the last value uploaded to the named uniform of p.
func (r *Recorder) Uniform(p device.Program, name string) ([]float32, bool) {
	loc, ok := r.uniformLocs[p][name]
	if !ok {
		return nil, false
	}
	v, ok := r.values[p][loc]
	return v, ok
}

// ResetUniforms forgets every uploaded uniform value.
func (r *Recorder) ResetUniforms() {
	for p := range r.values {
		r.values[p] = make(map[int32][]float32)
	}
}

// Count returns how many times the named method was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded method names in call order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset drops the recorded calls, draws and pointers but keeps every
// created object alive.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
	r.Pointers = nil
}

func (r *Recorder) LiveBuffers() int      { return len(r.buffers) }
func (r *Recorder) LiveVertexArrays() int { return len(r.vertexArrays) }
func (r *Recorder) LivePrograms() int     { return len(r.programs) }
func (r *Recorder) LiveTextures() int     { return len(r.textureSet) }

// BoundTexture returns the texture bound to unit.
func (r *Recorder) BoundTexture(unit int) device.Texture { return r.textures[unit] }

// BoundArrayBuffer returns the current array buffer binding.
func (r *Recorder) BoundArrayBuffer() device.Buffer { return r.arrayBuffer }

// BoundElementBuffer returns the current element buffer binding.
func (r *Recorder) BoundElementBuffer() device.Buffer { return r.elementBuffer }

// BoundVertexArray returns the current vertex array binding.
func (r *Recorder) BoundVertexArray() device.VertexArray { return r.vao }

var _ device.Device = (*Recorder)(nil)
