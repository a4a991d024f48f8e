// Package opengl provides a desktop OpenGL 4.1 backend for the engine,
// backed by a GLFW window. Desktop contexts do not get lost, so the
// loss/restore callbacks never fire here; the same engine code runs against
// WebGL in the browser where they do.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gridscape/gridscape/engine"
)

// coreExtensions maps WebGL extension names to capabilities that OpenGL 4.1
// core provides unconditionally.
var coreExtensions = map[string]bool{
	"OES_standard_derivatives": true,
	"OES_element_index_uint":   true,
}

// GL implements engine.GL over go-gl. OpenGL already uses numeric object
// names, so handles pass straight through.
type GL struct {
	vao uint32
}

// newGL initializes function pointers for the current context and binds the
// single VAO the core profile requires for vertex attribute state.
func newGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	g := &GL{}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	return g, nil
}

func (g *GL) Extension(name string) bool { return coreExtensions[name] }

func glStage(stage engine.Stage) uint32 {
	if stage == engine.StageVertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func glTarget(target engine.BufferTarget) uint32 {
	if target == engine.ArrayBuffer {
		return gl.ARRAY_BUFFER
	}
	return gl.ELEMENT_ARRAY_BUFFER
}

func glMode(mode engine.DrawMode) uint32 {
	if mode == engine.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func (g *GL) CreateShader(stage engine.Stage) engine.Shader {
	return engine.Shader(gl.CreateShader(glStage(stage)))
}

func (g *GL) ShaderSource(s engine.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (g *GL) CompileShader(s engine.Shader) {
	gl.CompileShader(uint32(s))
}

func (g *GL) ShaderCompiled(s engine.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (g *GL) ShaderInfoLog(s engine.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteShader(s engine.Shader) {
	gl.DeleteShader(uint32(s))
}

func (g *GL) CreateProgram() engine.Program {
	return engine.Program(gl.CreateProgram())
}

func (g *GL) AttachShader(p engine.Program, s engine.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (g *GL) LinkProgram(p engine.Program) {
	gl.LinkProgram(uint32(p))
}

func (g *GL) ProgramLinked(p engine.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (g *GL) ProgramInfoLog(p engine.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteProgram(p engine.Program) {
	gl.DeleteProgram(uint32(p))
}

func (g *GL) UseProgram(p engine.Program) {
	gl.UseProgram(uint32(p))
}

func (g *GL) CreateBuffer() engine.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return engine.Buffer(b)
}

func (g *GL) BindBuffer(target engine.BufferTarget, b engine.Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

func (g *GL) BufferDataF32(target engine.BufferTarget, data []float32) {
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (g *GL) BufferDataU16(target engine.BufferTarget, data []uint16) {
	gl.BufferData(glTarget(target), len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func (g *GL) DeleteBuffer(b engine.Buffer) {
	bb := uint32(b)
	gl.DeleteBuffers(1, &bb)
}

func (g *GL) AttribLocation(p engine.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (g *GL) EnableVertexAttribArray(loc int32) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (g *GL) VertexAttribPointer(loc int32, size int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, 0, 0)
}

func (g *GL) UniformLocation(p engine.Program, name string) engine.UniformLocation {
	return engine.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (g *GL) Uniform1f(loc engine.UniformLocation, v float32) {
	if loc >= 0 {
		gl.Uniform1f(int32(loc), v)
	}
}

func (g *GL) Uniform2f(loc engine.UniformLocation, x, y float32) {
	if loc >= 0 {
		gl.Uniform2f(int32(loc), x, y)
	}
}

func (g *GL) Uniform3f(loc engine.UniformLocation, x, y, z float32) {
	if loc >= 0 {
		gl.Uniform3f(int32(loc), x, y, z)
	}
}

func (g *GL) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (g *GL) ClearColor(r, gc, b, a float32) {
	gl.ClearColor(r, gc, b, a)
}

func (g *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *GL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (g *GL) DrawElements(mode engine.DrawMode, count int, byteOffset int) {
	gl.DrawElementsWithOffset(glMode(mode), int32(count), gl.UNSIGNED_SHORT, uintptr(byteOffset))
}
