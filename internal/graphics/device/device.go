package device

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDevice is wrapped by every error reported by Device.Err.
var ErrDevice = errors.New("device error")

// Handles returned by a Device. Zero is never a valid object and unbinds
// when passed to the matching Bind call.
type (
	Buffer      uint32
	VertexArray uint32
	Program     uint32
	Texture     uint32
)

// Primitive selects the topology used by a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
	Lines
	LineStrip
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	case TriangleFan:
		return "triangle_fan"
	case Lines:
		return "lines"
	case LineStrip:
		return "line_strip"
	case Points:
		return "points"
	}
	return "unknown"
}

// Device is the graphics context every component receives explicitly.
// All calls mutate process-wide GPU state and must be issued from the
// render thread that owns the context.
type Device interface {
	CreateBuffer() (Buffer, error)
	BindArrayBuffer(b Buffer)
	BindElementBuffer(b Buffer)
	// UploadFloatBuffer fills the bound array buffer.
	UploadFloatBuffer(data []float32)
	// UploadIndexBuffer fills the bound element buffer.
	UploadIndexBuffer(data []uint16)
	DeleteBuffer(b Buffer)

	CreateVertexArray() (VertexArray, error)
	// BindVertexArray reports whether the vertex array is active and its
	// recorded attribute layout can be reused.
	BindVertexArray(vao VertexArray) bool
	DeleteVertexArray(vao VertexArray)
	EnableVertexAttrib(location int32)
	// VertexAttribPointer describes float attribute data in the bound array
	// buffer. stride and offset are in bytes.
	VertexAttribPointer(location, components, stride int32, offset int)

	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	UseProgram(p Program)
	DeleteProgram(p Program)
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	// Matrix uniforms are uploaded column-major, the storage order of mgl32.
	UniformMatrix3(location int32, m mgl32.Mat3)
	UniformMatrix4(location int32, m mgl32.Mat4)

	CreateTexture(img *image.RGBA) (Texture, error)
	BindTexture(unit int, t Texture)
	DeleteTexture(t Texture)

	DrawArrays(mode Primitive, first, count int32)
	// DrawElements draws count unsigned 16-bit indices from the bound
	// element buffer.
	DrawElements(mode Primitive, count int32)

	Clear(color mgl32.Vec4)
	Viewport(width, height int)

	// Err returns and clears the first pending device error.
	Err() error
}
