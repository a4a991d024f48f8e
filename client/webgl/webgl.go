//go:build js && wasm

// Package webgl implements engine.GL over a browser WebGL context.
//
// WebGL hands out opaque JS objects for shaders, programs, and buffers; the
// engine works with numeric handles. The Context keeps the mapping and
// issues handles starting at 1, so 0 is never valid on either side.
package webgl

import (
	"syscall/js"

	"github.com/gridscape/gridscape/engine"
)

type Context struct {
	gl     js.Value
	consts glConsts

	nextHandle uint32
	shaders    map[engine.Shader]js.Value
	programs   map[engine.Program]js.Value
	buffers    map[engine.Buffer]js.Value

	// Uniform locations are JS objects; the engine sees indexes into
	// uniforms. uniformLocs caches lookups so per-frame UniformLocation
	// calls do not grow the table.
	uniforms    []js.Value
	uniformLocs map[uniformKey]engine.UniformLocation

	// extensions caches getExtension results; re-querying per frame would
	// churn JS objects for nothing.
	extensions map[string]bool
}

// glConsts snapshots the numeric GL enum values off the context object once,
// instead of a js property read per call.
type glConsts struct {
	vertexShader       int
	fragmentShader     int
	compileStatus      int
	linkStatus         int
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	floatType          int
	unsignedShort      int
	triangleStrip      int
	triangles          int
	colorBufferBit     int
	depthBufferBit     int
	depthTest          int
}

// NewContext wraps a WebGL rendering context obtained from a canvas.
func NewContext(gl js.Value) *Context {
	return &Context{
		gl: gl,
		consts: glConsts{
			vertexShader:       gl.Get("VERTEX_SHADER").Int(),
			fragmentShader:     gl.Get("FRAGMENT_SHADER").Int(),
			compileStatus:      gl.Get("COMPILE_STATUS").Int(),
			linkStatus:         gl.Get("LINK_STATUS").Int(),
			arrayBuffer:        gl.Get("ARRAY_BUFFER").Int(),
			elementArrayBuffer: gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
			staticDraw:         gl.Get("STATIC_DRAW").Int(),
			floatType:          gl.Get("FLOAT").Int(),
			unsignedShort:      gl.Get("UNSIGNED_SHORT").Int(),
			triangleStrip:      gl.Get("TRIANGLE_STRIP").Int(),
			triangles:          gl.Get("TRIANGLES").Int(),
			colorBufferBit:     gl.Get("COLOR_BUFFER_BIT").Int(),
			depthBufferBit:     gl.Get("DEPTH_BUFFER_BIT").Int(),
			depthTest:          gl.Get("DEPTH_TEST").Int(),
		},
		shaders:     make(map[engine.Shader]js.Value),
		programs:    make(map[engine.Program]js.Value),
		buffers:     make(map[engine.Buffer]js.Value),
		uniformLocs: make(map[uniformKey]engine.UniformLocation),
		extensions:  make(map[string]bool),
	}
}

type uniformKey struct {
	program engine.Program
	name    string
}

func (c *Context) handle() uint32 {
	c.nextHandle++
	return c.nextHandle
}

func (c *Context) stage(s engine.Stage) int {
	if s == engine.StageVertex {
		return c.consts.vertexShader
	}
	return c.consts.fragmentShader
}

func (c *Context) target(t engine.BufferTarget) int {
	if t == engine.ArrayBuffer {
		return c.consts.arrayBuffer
	}
	return c.consts.elementArrayBuffer
}

func (c *Context) mode(m engine.DrawMode) int {
	if m == engine.TriangleStrip {
		return c.consts.triangleStrip
	}
	return c.consts.triangles
}

func (c *Context) Extension(name string) bool {
	if ok, cached := c.extensions[name]; cached {
		return ok
	}
	ext := c.gl.Call("getExtension", name)
	ok := !ext.IsNull() && !ext.IsUndefined()
	c.extensions[name] = ok
	return ok
}

func (c *Context) CreateShader(stage engine.Stage) engine.Shader {
	s := engine.Shader(c.handle())
	c.shaders[s] = c.gl.Call("createShader", c.stage(stage))
	return s
}

func (c *Context) ShaderSource(s engine.Shader, src string) {
	c.gl.Call("shaderSource", c.shaders[s], src)
}

func (c *Context) CompileShader(s engine.Shader) {
	c.gl.Call("compileShader", c.shaders[s])
}

func (c *Context) ShaderCompiled(s engine.Shader) bool {
	return c.gl.Call("getShaderParameter", c.shaders[s], c.consts.compileStatus).Bool()
}

func (c *Context) ShaderInfoLog(s engine.Shader) string {
	return c.gl.Call("getShaderInfoLog", c.shaders[s]).String()
}

func (c *Context) DeleteShader(s engine.Shader) {
	c.gl.Call("deleteShader", c.shaders[s])
	delete(c.shaders, s)
}

func (c *Context) CreateProgram() engine.Program {
	p := engine.Program(c.handle())
	c.programs[p] = c.gl.Call("createProgram")
	return p
}

func (c *Context) AttachShader(p engine.Program, s engine.Shader) {
	c.gl.Call("attachShader", c.programs[p], c.shaders[s])
}

func (c *Context) LinkProgram(p engine.Program) {
	c.gl.Call("linkProgram", c.programs[p])
}

func (c *Context) ProgramLinked(p engine.Program) bool {
	return c.gl.Call("getProgramParameter", c.programs[p], c.consts.linkStatus).Bool()
}

func (c *Context) ProgramInfoLog(p engine.Program) string {
	return c.gl.Call("getProgramInfoLog", c.programs[p]).String()
}

func (c *Context) DeleteProgram(p engine.Program) {
	c.gl.Call("deleteProgram", c.programs[p])
	delete(c.programs, p)
}

func (c *Context) UseProgram(p engine.Program) {
	c.gl.Call("useProgram", c.programs[p])
}

func (c *Context) CreateBuffer() engine.Buffer {
	b := engine.Buffer(c.handle())
	c.buffers[b] = c.gl.Call("createBuffer")
	return b
}

func (c *Context) BindBuffer(target engine.BufferTarget, b engine.Buffer) {
	c.gl.Call("bindBuffer", c.target(target), c.buffers[b])
}

func (c *Context) BufferDataF32(target engine.BufferTarget, data []float32) {
	c.gl.Call("bufferData", c.target(target), float32Array(data), c.consts.staticDraw)
}

func (c *Context) BufferDataU16(target engine.BufferTarget, data []uint16) {
	c.gl.Call("bufferData", c.target(target), uint16Array(data), c.consts.staticDraw)
}

func (c *Context) DeleteBuffer(b engine.Buffer) {
	c.gl.Call("deleteBuffer", c.buffers[b])
	delete(c.buffers, b)
}

func (c *Context) AttribLocation(p engine.Program, name string) int32 {
	return int32(c.gl.Call("getAttribLocation", c.programs[p], name).Int())
}

func (c *Context) EnableVertexAttribArray(loc int32) {
	c.gl.Call("enableVertexAttribArray", loc)
}

func (c *Context) VertexAttribPointer(loc int32, size int) {
	c.gl.Call("vertexAttribPointer", loc, size, c.consts.floatType, false, 0, 0)
}

func (c *Context) UniformLocation(p engine.Program, name string) engine.UniformLocation {
	key := uniformKey{program: p, name: name}
	if loc, ok := c.uniformLocs[key]; ok {
		return loc
	}
	v := c.gl.Call("getUniformLocation", c.programs[p], name)
	loc := engine.UniformLocation(-1)
	if !v.IsNull() {
		c.uniforms = append(c.uniforms, v)
		loc = engine.UniformLocation(len(c.uniforms) - 1)
	}
	c.uniformLocs[key] = loc
	return loc
}

func (c *Context) uniform(loc engine.UniformLocation) (js.Value, bool) {
	if loc < 0 || int(loc) >= len(c.uniforms) {
		return js.Value{}, false
	}
	return c.uniforms[loc], true
}

func (c *Context) Uniform1f(loc engine.UniformLocation, v float32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform1f", u, v)
	}
}

func (c *Context) Uniform2f(loc engine.UniformLocation, x, y float32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform2f", u, x, y)
	}
}

func (c *Context) Uniform3f(loc engine.UniformLocation, x, y, z float32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform3f", u, x, y, z)
	}
}

func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *Context) Clear() {
	c.gl.Call("clear", c.consts.colorBufferBit|c.consts.depthBufferBit)
}

func (c *Context) EnableDepthTest() {
	c.gl.Call("enable", c.consts.depthTest)
}

func (c *Context) DrawElements(mode engine.DrawMode, count int, byteOffset int) {
	c.gl.Call("drawElements", c.mode(mode), count, c.consts.unsignedShort, byteOffset)
}
