package engine

// Opaque GPU object handles issued by a GL implementation. Handles are only
// meaningful to the implementation that issued them and only until the
// underlying context is lost. 0 is never a valid handle.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// UniformLocation identifies a uniform within a linked program.
// A negative location means the uniform is not present.
type UniformLocation int32

// Stage identifies a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// BufferTarget selects a buffer binding point.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota + 1
	ElementArrayBuffer
)

// DrawMode selects the primitive assembly mode for draw calls.
type DrawMode int

const (
	TriangleStrip DrawMode = iota + 1
	Triangles
)

// GL is the command subset the renderer issues against a graphics context.
// Implementations exist for WebGL (client/webgl) and desktop OpenGL
// (backend/opengl); tests use an in-memory fake.
//
// A GL value obtained from Surface.AcquireContext is valid until the surface
// reports context loss. Using handles from a previous context is undefined.
type GL interface {
	// Extension activates the named extension, reporting whether it is
	// available. Activation is idempotent.
	Extension(name string) bool

	CreateShader(stage Stage) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferDataF32(target BufferTarget, data []float32)
	BufferDataU16(target BufferTarget, data []uint16)
	DeleteBuffer(b Buffer)

	AttribLocation(p Program, name string) int32
	EnableVertexAttribArray(loc int32)
	// VertexAttribPointer describes the bound array buffer as tightly packed
	// float32 vectors of the given component count.
	VertexAttribPointer(loc int32, size int)

	UniformLocation(p Program, name string) UniformLocation
	Uniform1f(loc UniformLocation, v float32)
	Uniform2f(loc UniformLocation, x, y float32)
	Uniform3f(loc UniformLocation, x, y, z float32)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	// Clear clears the color and depth buffers.
	Clear()
	EnableDepthTest()

	// DrawElements draws count 16-bit indices from the bound element array
	// buffer starting at byteOffset.
	DrawElements(mode DrawMode, count int, byteOffset int)
}

// Surface is the drawing surface the renderer targets: a canvas in the
// browser, a window on the desktop.
type Surface interface {
	// AcquireContext obtains a fresh graphics context for the surface.
	// Called once at construction and again after every context restore.
	AcquireContext() (GL, error)

	// ClientSize returns the surface's display size in logical pixels.
	ClientSize() (width, height int)

	// PixelRatio returns the scale between device and logical pixels.
	PixelRatio() float64

	// DrawingSize returns the current backing-buffer size in device pixels.
	DrawingSize() (width, height int)

	// SetDrawingSize reallocates the backing buffer to the given device-pixel
	// size.
	SetDrawingSize(width, height int)

	// OnContextLost registers fn to be invoked when the context is lost.
	OnContextLost(fn func())

	// OnContextRestored registers fn to be invoked when a lost context has
	// been restored by the platform.
	OnContextRestored(fn func())
}

// FrameHandle identifies a scheduled frame callback. 0 means no frame is
// scheduled.
type FrameHandle int

// FrameScheduler schedules a callback to run on the next display frame.
// requestAnimationFrame in the browser; the event loop on the desktop.
type FrameScheduler interface {
	// RequestFrame schedules fn for the next frame and returns a non-zero
	// handle. now is a monotonic timestamp in milliseconds.
	RequestFrame(fn func(now float64)) FrameHandle

	// CancelFrame unschedules a previously requested frame. Cancelling an
	// already-fired or unknown handle is a no-op.
	CancelFrame(h FrameHandle)
}

// Source is a shader source resolved from a logical id.
type Source struct {
	Text  string
	Stage Stage
}

// SourceResolver resolves a logical shader source id to its text and stage.
type SourceResolver interface {
	Resolve(id string) (Source, error)
}
