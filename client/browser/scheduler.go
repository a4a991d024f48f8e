//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/gridscape/gridscape/engine"
)

// AnimationScheduler implements engine.FrameScheduler on top of
// requestAnimationFrame. The browser issues handles starting at 1, so the
// engine's 0-means-idle convention holds.
type AnimationScheduler struct {
	win   HTMLWindow
	funcs map[engine.FrameHandle]js.Func
}

func NewAnimationScheduler(win HTMLWindow) *AnimationScheduler {
	return &AnimationScheduler{
		win:   win,
		funcs: make(map[engine.FrameHandle]js.Func),
	}
}

func (s *AnimationScheduler) RequestFrame(fn func(now float64)) engine.FrameHandle {
	var handle engine.FrameHandle
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		s.release(handle)
		now := 0.0
		if len(args) > 0 {
			now = args[0].Float()
		}
		fn(now)
		return nil
	})
	handle = engine.FrameHandle(s.win.RequestAnimationFrame(f))
	s.funcs[handle] = f
	return handle
}

func (s *AnimationScheduler) CancelFrame(h engine.FrameHandle) {
	if h == 0 {
		return
	}
	s.win.CancelAnimationFrame(int(h))
	s.release(h)
}

func (s *AnimationScheduler) release(h engine.FrameHandle) {
	if f, ok := s.funcs[h]; ok {
		f.Release()
		delete(s.funcs, h)
	}
}
