package device

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GL implements Device on an OpenGL 4.1 core context. The context must be
// current on the calling thread before NewGL is called.
type GL struct{}

// NewGL loads the OpenGL function pointers and sets the default pipeline
// state used by the mesh renderer.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	return &GL{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *GL) CreateBuffer() (Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, fmt.Errorf("%w: glGenBuffers returned 0", ErrDevice)
	}
	return Buffer(b), nil
}

func (d *GL) BindArrayBuffer(b Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (d *GL) BindElementBuffer(b Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}

func (d *GL) UploadFloatBuffer(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *GL) UploadIndexBuffer(data []uint16) {
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *GL) DeleteBuffer(b Buffer) {
	if b == 0 {
		return
	}
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *GL) CreateVertexArray() (VertexArray, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("%w: glGenVertexArrays returned 0", ErrDevice)
	}
	return VertexArray(vao), nil
}

// BindVertexArray always succeeds on a core profile context, so a non-zero
// vertex array is reported as reusable.
func (d *GL) BindVertexArray(vao VertexArray) bool {
	gl.BindVertexArray(uint32(vao))
	return vao != 0
}

func (d *GL) DeleteVertexArray(vao VertexArray) {
	if vao == 0 {
		return
	}
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *GL) EnableVertexAttrib(location int32) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (d *GL) VertexAttribPointer(location, components, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(location), components, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *GL) CreateProgram(vertexSrc, fragmentSrc string) (Program, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return Program(program), nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *GL) UseProgram(p Program) {
	gl.UseProgram(uint32(p))
}

func (d *GL) DeleteProgram(p Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

func (d *GL) AttribLocation(p Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *GL) UniformLocation(p Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *GL) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *GL) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *GL) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (d *GL) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (d *GL) UniformMatrix3(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *GL) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *GL) CreateTexture(img *image.RGBA) (Texture, error) {
	var texture uint32
	gl.GenTextures(1, &texture)
	if texture == 0 {
		return 0, fmt.Errorf("%w: glGenTextures returned 0", ErrDevice)
	}
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	size := img.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return Texture(texture), nil
}

func (d *GL) BindTexture(unit int, t Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *GL) DeleteTexture(t Texture) {
	if t == 0 {
		return
	}
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (d *GL) DrawArrays(mode Primitive, first, count int32) {
	gl.DrawArrays(glMode(mode), first, count)
}

func (d *GL) DrawElements(mode Primitive, count int32) {
	gl.DrawElements(glMode(mode), count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (d *GL) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *GL) Err() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: gl error 0x%x", ErrDevice, code)
	}
	return nil
}

func glMode(p Primitive) uint32 {
	switch p {
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case TriangleFan:
		return gl.TRIANGLE_FAN
	case Lines:
		return gl.LINES
	case LineStrip:
		return gl.LINE_STRIP
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

var _ Device = (*GL)(nil)
