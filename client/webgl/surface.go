//go:build js && wasm

package webgl

import (
	"errors"
	"syscall/js"

	"github.com/gridscape/gridscape/client/browser"
	"github.com/gridscape/gridscape/engine"
)

// CanvasSurface implements engine.Surface for a canvas element. Context loss
// and restore arrive as webglcontextlost/webglcontextrestored events.
type CanvasSurface struct {
	win    browser.HTMLWindow
	canvas browser.Canvas

	// Event callbacks are registered for the life of the page.
	listeners []js.Func
}

func NewCanvasSurface(win browser.HTMLWindow, canvas browser.Canvas) *CanvasSurface {
	return &CanvasSurface{win: win, canvas: canvas}
}

func (s *CanvasSurface) AcquireContext() (engine.GL, error) {
	ctx := s.canvas.GetContext("webgl")
	if ctx.IsNull() {
		ctx = s.canvas.GetContext("experimental-webgl")
	}
	if ctx.IsNull() {
		return nil, errors.New("webgl: browser does not support WebGL")
	}
	return NewContext(ctx), nil
}

func (s *CanvasSurface) ClientSize() (int, int) {
	return s.canvas.ClientWidth(), s.canvas.ClientHeight()
}

func (s *CanvasSurface) PixelRatio() float64 {
	return s.win.DevicePixelRatio()
}

func (s *CanvasSurface) DrawingSize() (int, int) {
	return s.canvas.Width(), s.canvas.Height()
}

func (s *CanvasSurface) SetDrawingSize(width, height int) {
	s.canvas.SetWidth(width)
	s.canvas.SetHeight(height)
}

func (s *CanvasSurface) OnContextLost(fn func()) {
	// preventDefault tells the browser the application handles restoration,
	// otherwise webglcontextrestored never fires.
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		fn()
		return nil
	})
	s.listeners = append(s.listeners, f)
	s.canvas.AddEventListener("webglcontextlost", f)
}

func (s *CanvasSurface) OnContextRestored(fn func()) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	s.listeners = append(s.listeners, f)
	s.canvas.AddEventListener("webglcontextrestored", f)
}
