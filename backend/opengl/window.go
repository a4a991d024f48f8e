package opengl

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gridscape/gridscape/engine"
)

// Window is a GLFW window that serves as both the engine's Surface and its
// FrameScheduler. The caller must have called glfw.Init and must drive Run
// from the thread that owns the context.
type Window struct {
	win *glfw.Window

	drawW, drawH int

	start     time.Time
	nextFrame engine.FrameHandle
	pending   map[engine.FrameHandle]func(now float64)
}

// NewWindow creates a visible window with a 4.1 core profile context.
func NewWindow(title string, width, height int) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	fbW, fbH := win.GetFramebufferSize()
	return &Window{
		win:     win,
		drawW:   fbW,
		drawH:   fbH,
		start:   time.Now(),
		pending: map[engine.FrameHandle]func(now float64){},
	}, nil
}

func (w *Window) AcquireContext() (engine.GL, error) {
	w.win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return newGL()
}

func (w *Window) ClientSize() (int, int) {
	return w.win.GetSize()
}

func (w *Window) PixelRatio() float64 {
	scale, _ := w.win.GetContentScale()
	return float64(scale)
}

func (w *Window) DrawingSize() (int, int) {
	return w.drawW, w.drawH
}

// SetDrawingSize records the requested backing size. GLFW sizes the
// framebuffer itself, so this is bookkeeping only; Viewport is what matters.
func (w *Window) SetDrawingSize(width, height int) {
	w.drawW = width
	w.drawH = height
}

// OnContextLost is a no-op: desktop GL contexts live as long as the window.
func (w *Window) OnContextLost(fn func()) {}

func (w *Window) OnContextRestored(fn func()) {}

func (w *Window) RequestFrame(fn func(now float64)) engine.FrameHandle {
	w.nextFrame++
	h := w.nextFrame
	w.pending[h] = fn
	return h
}

func (w *Window) CancelFrame(h engine.FrameHandle) {
	delete(w.pending, h)
}

// Run pumps events and fires pending frame callbacks until the window is
// closed. Callbacks receive milliseconds since the window was created,
// mirroring requestAnimationFrame timestamps.
func (w *Window) Run() {
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		if len(w.pending) == 0 {
			glfw.WaitEventsTimeout(0.05)
			continue
		}
		now := float64(time.Since(w.start)) / float64(time.Millisecond)
		fns := w.pending
		w.pending = map[engine.FrameHandle]func(now float64){}
		for _, fn := range fns {
			fn(now)
		}
		w.win.SwapBuffers()
	}
}
