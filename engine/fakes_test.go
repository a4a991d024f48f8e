package engine

import "fmt"

// fakeGL is an in-memory GL that tracks live objects so tests can assert
// that failed batches leak nothing.
type fakeGL struct {
	nextHandle uint32

	shaders  map[Shader]*fakeShader
	programs map[Program]bool
	buffers  map[Buffer]bool

	shadersCreated  int
	programsCreated int

	// failCompile maps shader source text to the info log to fail with.
	failCompile map[string]string
	// failLink makes every link fail with the given log.
	failLink string
	// missingExtensions lists extensions Extension reports unavailable.
	missingExtensions map[string]bool

	uploadsF32 int
	uploadsU16 int
	useProgram []Program
	viewports  [][4]int
	clears     int
	draws      []fakeDraw
}

type fakeShader struct {
	stage    Stage
	source   string
	compiled bool
}

type fakeDraw struct {
	mode       DrawMode
	count      int
	byteOffset int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		shaders:  make(map[Shader]*fakeShader),
		programs: make(map[Program]bool),
		buffers:  make(map[Buffer]bool),
	}
}

func (g *fakeGL) handle() uint32 {
	g.nextHandle++
	return g.nextHandle
}

func (g *fakeGL) Extension(name string) bool { return !g.missingExtensions[name] }

func (g *fakeGL) CreateShader(stage Stage) Shader {
	s := Shader(g.handle())
	g.shaders[s] = &fakeShader{stage: stage}
	g.shadersCreated++
	return s
}

func (g *fakeGL) ShaderSource(s Shader, src string) { g.shaders[s].source = src }

func (g *fakeGL) CompileShader(s Shader) {
	sh := g.shaders[s]
	_, fails := g.failCompile[sh.source]
	sh.compiled = !fails
}

func (g *fakeGL) ShaderCompiled(s Shader) bool { return g.shaders[s].compiled }

func (g *fakeGL) ShaderInfoLog(s Shader) string { return g.failCompile[g.shaders[s].source] }

func (g *fakeGL) DeleteShader(s Shader) {
	if _, ok := g.shaders[s]; !ok {
		panic(fmt.Sprintf("DeleteShader(%d): not a live shader", s))
	}
	delete(g.shaders, s)
}

func (g *fakeGL) CreateProgram() Program {
	p := Program(g.handle())
	g.programs[p] = true
	g.programsCreated++
	return p
}

func (g *fakeGL) AttachShader(p Program, s Shader) {}
func (g *fakeGL) LinkProgram(p Program)            {}
func (g *fakeGL) ProgramLinked(p Program) bool     { return g.failLink == "" }
func (g *fakeGL) ProgramInfoLog(p Program) string  { return g.failLink }

func (g *fakeGL) DeleteProgram(p Program) {
	if !g.programs[p] {
		panic(fmt.Sprintf("DeleteProgram(%d): not a live program", p))
	}
	delete(g.programs, p)
}

func (g *fakeGL) UseProgram(p Program) { g.useProgram = append(g.useProgram, p) }

func (g *fakeGL) CreateBuffer() Buffer {
	b := Buffer(g.handle())
	g.buffers[b] = true
	return b
}

func (g *fakeGL) BindBuffer(target BufferTarget, b Buffer) {}

func (g *fakeGL) BufferDataF32(target BufferTarget, data []float32) { g.uploadsF32++ }
func (g *fakeGL) BufferDataU16(target BufferTarget, data []uint16)  { g.uploadsU16++ }

func (g *fakeGL) DeleteBuffer(b Buffer) { delete(g.buffers, b) }

func (g *fakeGL) AttribLocation(p Program, name string) int32         { return 0 }
func (g *fakeGL) EnableVertexAttribArray(loc int32)                   {}
func (g *fakeGL) VertexAttribPointer(loc int32, size int)             {}
func (g *fakeGL) UniformLocation(p Program, name string) UniformLocation { return -1 }
func (g *fakeGL) Uniform1f(loc UniformLocation, v float32)            {}
func (g *fakeGL) Uniform2f(loc UniformLocation, x, y float32)         {}
func (g *fakeGL) Uniform3f(loc UniformLocation, x, y, z float32)      {}

func (g *fakeGL) Viewport(x, y, width, height int) {
	g.viewports = append(g.viewports, [4]int{x, y, width, height})
}

func (g *fakeGL) ClearColor(r, gc, b, a float32) {}
func (g *fakeGL) Clear()                         { g.clears++ }
func (g *fakeGL) EnableDepthTest()               {}

func (g *fakeGL) DrawElements(mode DrawMode, count int, byteOffset int) {
	g.draws = append(g.draws, fakeDraw{mode: mode, count: count, byteOffset: byteOffset})
}

// fakeResolver serves sources from a map and counts lookups per id.
type fakeResolver struct {
	sources map[string]Source
	calls   map[string]int
}

func newFakeResolver(sources map[string]Source) *fakeResolver {
	return &fakeResolver{sources: sources, calls: make(map[string]int)}
}

func (r *fakeResolver) Resolve(id string) (Source, error) {
	r.calls[id]++
	src, ok := r.sources[id]
	if !ok {
		return Source{}, fmt.Errorf("no source %q", id)
	}
	return src, nil
}

// fakeSurface is a Surface whose size, ratio, and failure behavior tests
// control directly. Loss and restore are delivered by calling the registered
// callbacks, as the browser would.
type fakeSurface struct {
	gl         *fakeGL
	acquireErr error
	acquires   int

	clientW, clientH int
	ratio            float64
	drawW, drawH     int
	setDrawingCalls  int

	lostFn     func()
	restoredFn func()
}

func (s *fakeSurface) AcquireContext() (GL, error) {
	s.acquires++
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	return s.gl, nil
}

func (s *fakeSurface) ClientSize() (int, int)  { return s.clientW, s.clientH }
func (s *fakeSurface) PixelRatio() float64     { return s.ratio }
func (s *fakeSurface) DrawingSize() (int, int) { return s.drawW, s.drawH }

func (s *fakeSurface) SetDrawingSize(w, h int) {
	s.drawW, s.drawH = w, h
	s.setDrawingCalls++
}

func (s *fakeSurface) OnContextLost(fn func())     { s.lostFn = fn }
func (s *fakeSurface) OnContextRestored(fn func()) { s.restoredFn = fn }

// fakeScheduler hands out handles and lets tests fire pending callbacks
// manually.
type fakeScheduler struct {
	next     FrameHandle
	pending  map[FrameHandle]func(now float64)
	requests int
	cancels  int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[FrameHandle]func(now float64))}
}

func (s *fakeScheduler) RequestFrame(fn func(now float64)) FrameHandle {
	s.next++
	s.pending[s.next] = fn
	s.requests++
	return s.next
}

func (s *fakeScheduler) CancelFrame(h FrameHandle) {
	if _, ok := s.pending[h]; ok {
		delete(s.pending, h)
		s.cancels++
	}
}

// fire runs the single pending callback, failing if there is not exactly one.
func (s *fakeScheduler) fire(now float64) {
	if len(s.pending) != 1 {
		panic(fmt.Sprintf("fire: %d callbacks pending, want 1", len(s.pending)))
	}
	for h, fn := range s.pending {
		delete(s.pending, h)
		fn(now)
	}
}
