// Package engine renders a procedurally generated terrain grid and manages
// the lifetime of the GPU resources behind it: context acquisition, shader
// program compilation with transactional rollback, grid mesh generation, and
// the per-frame render/resize loop, including recovery from context loss.
//
// The engine is pure Go. All platform access goes through the narrow
// Surface, FrameScheduler, SourceResolver, and GL interfaces; see
// client/webgl and backend/opengl for the browser and desktop bindings.
package engine

import (
	"fmt"

	"github.com/gridscape/gridscape/common/math32"
)

// PositionAttrib is the vertex attribute every configured vertex shader must
// declare for the grid positions.
const PositionAttrib = "position"

// Renderer owns one graphics context, the compiled program set, the cached
// grid mesh, and the frame loop. It is single-threaded: all methods and
// callbacks must run on the same goroutine that services the scheduler.
//
// A Renderer is either active (context valid, frames may be scheduled) or
// lost (context invalid, loop stopped). Loss and restore notifications from
// the Surface move it between the two states.
type Renderer struct {
	cfg       Config
	surface   Surface
	scheduler FrameScheduler
	sources   SourceResolver
	onError   func(error)

	// CPU-side mesh, generated once. Grid geometry is context-independent,
	// so only the GPU buffers are rebuilt on restore.
	vertexData []float32
	indexData  []uint16

	// Per-context state, invalid while lost.
	gl        GL
	programs  map[string]Program
	attribs   map[string]int32
	vertexBuf Buffer
	indexBuf  Buffer

	frame FrameHandle
	lost  bool
}

// Option configures a Renderer beyond its Config.
type Option func(r *Renderer)

// WithErrorHandler routes failures that happen after construction (the
// context-restore path) to fn instead of the package logger.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Renderer) {
		r.onError = fn
	}
}

// New validates cfg, acquires a context from the surface, compiles the
// program set, and uploads the grid mesh. The returned Renderer is active
// but not yet running; call Start to begin the frame loop.
//
// Any failure here is fatal for this Renderer: a surface that cannot produce
// a context, a missing extension, or a shader that does not compile all
// indicate a deployment problem rather than a transient condition.
func New(surface Surface, scheduler FrameScheduler, sources SourceResolver, cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		cfg:        cfg,
		surface:    surface,
		scheduler:  scheduler,
		sources:    sources,
		vertexData: FlattenV2(GridVertices(cfg.GridDimension)),
		indexData:  GridIndices(cfg.GridDimension),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.acquire(); err != nil {
		return nil, err
	}
	surface.OnContextLost(r.contextLost)
	surface.OnContextRestored(r.contextRestored)
	return r, nil
}

// Start begins the frame loop. Any loop already running is cancelled first,
// so calling Start twice never leaves two callbacks scheduled. Start is a
// no-op while the context is lost; the restore path restarts the loop.
func (r *Renderer) Start() {
	if r.lost {
		return
	}
	r.stopLoop()
	r.frame = r.scheduler.RequestFrame(r.renderFrame)
}

// acquire obtains a context, activates required extensions, compiles the
// program set, and uploads the mesh buffers. Used at construction and again
// on every context restore.
func (r *Renderer) acquire() error {
	gl, err := r.surface.AcquireContext()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	for _, ext := range r.cfg.Extensions {
		if !gl.Extension(ext) {
			return fmt.Errorf("%w: %q", ErrExtensionUnavailable, ext)
		}
	}
	programs, err := compilePrograms(gl, r.sources, r.cfg.Programs)
	if err != nil {
		return err
	}

	attribs := make(map[string]int32, len(programs))
	for name, p := range programs {
		attribs[name] = gl.AttribLocation(p, PositionAttrib)
	}

	r.gl = gl
	r.programs = programs
	r.attribs = attribs
	r.uploadMesh()
	gl.EnableDepthTest()
	r.lost = false
	logger().Info("graphics context acquired", "programs", len(programs), "gridDimension", r.cfg.GridDimension)
	return nil
}

func (r *Renderer) uploadMesh() {
	r.vertexBuf = r.gl.CreateBuffer()
	r.gl.BindBuffer(ArrayBuffer, r.vertexBuf)
	r.gl.BufferDataF32(ArrayBuffer, r.vertexData)

	r.indexBuf = r.gl.CreateBuffer()
	r.gl.BindBuffer(ElementArrayBuffer, r.indexBuf)
	r.gl.BufferDataU16(ElementArrayBuffer, r.indexData)
}

// contextLost handles the platform's loss notification. The pending frame is
// cancelled before returning so no callback can fire against the dead
// context, and all handles from the previous context are dropped: the
// platform has already destroyed the objects behind them.
func (r *Renderer) contextLost() {
	r.stopLoop()
	r.lost = true
	r.gl = nil
	r.programs = nil
	r.attribs = nil
	r.vertexBuf = 0
	r.indexBuf = 0
	logger().Info("graphics context lost")
}

// contextRestored handles the platform's restore notification: reacquire,
// recompile, re-upload, restart. Duplicate notifications while already
// active are ignored.
func (r *Renderer) contextRestored() {
	if !r.lost {
		return
	}
	if err := r.acquire(); err != nil {
		r.fail(fmt.Errorf("engine: restoring context: %w", err))
		return
	}
	logger().Info("graphics context restored")
	r.Start()
}

func (r *Renderer) stopLoop() {
	if r.frame != 0 {
		r.scheduler.CancelFrame(r.frame)
		r.frame = 0
	}
}

func (r *Renderer) fail(err error) {
	if r.onError != nil {
		r.onError(err)
		return
	}
	logger().Warn("renderer failure", "err", err)
}

// renderFrame is the per-frame callback: resize if the display size changed,
// draw, reschedule. The loop only ends through contextLost.
func (r *Renderer) renderFrame(now float64) {
	r.frame = 0
	if r.lost {
		// A loss notification cancelled the loop; a stale callback that
		// still fired must not touch the context.
		return
	}
	r.resize()
	r.draw(now)
	r.frame = r.scheduler.RequestFrame(r.renderFrame)
}

// resize matches the drawing buffer to the displayed size scaled by the
// pixel ratio. Buffer and viewport are updated together, and only on
// mismatch: reallocating the backing store every frame would be wasted work.
func (r *Renderer) resize() {
	cw, ch := r.surface.ClientSize()
	ratio := float32(r.surface.PixelRatio())
	dw := int(math32.Floor(float32(cw) * ratio))
	dh := int(math32.Floor(float32(ch) * ratio))
	bw, bh := r.surface.DrawingSize()
	if bw != dw || bh != dh {
		r.surface.SetDrawingSize(dw, dh)
		r.gl.Viewport(0, 0, dw, dh)
	}
}

func (r *Renderer) draw(now float64) {
	gl := r.gl
	c := Color{A: 1}
	if r.cfg.ClearColor.Specified {
		c = r.cfg.ClearColor.Value
	}
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear()

	dim := r.cfg.GridDimension
	stripLen := 2*dim + 2
	for _, spec := range r.cfg.Programs {
		p := r.programs[spec.Name]
		gl.UseProgram(p)

		gl.BindBuffer(ArrayBuffer, r.vertexBuf)
		loc := r.attribs[spec.Name]
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 2)
		gl.BindBuffer(ElementArrayBuffer, r.indexBuf)

		if r.cfg.Draw != nil {
			r.cfg.Draw(gl, spec.Name, p, now)
		}
		for row := 0; row < dim; row++ {
			gl.DrawElements(TriangleStrip, stripLen, row*stripLen*2)
		}
	}
}
