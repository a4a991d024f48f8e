//go:build js && wasm

// Package browser wraps the small slice of the DOM the client needs:
// element lookup, canvas sizing, and the animation-frame scheduler.
package browser

import (
	"errors"
	"fmt"
	"strconv"
	"syscall/js"
)

// ErrElementNotFound indicates a required DOM element is missing from the
// page. This is a deployment mistake, not a transient condition.
var ErrElementNotFound = errors.New("browser: element not found")

type HTMLWindow struct{ jsValue js.Value }

func Window() HTMLWindow {
	return HTMLWindow{js.Global().Get("window")}
}

func (w HTMLWindow) RequestAnimationFrame(fn js.Func) int {
	return w.jsValue.Call("requestAnimationFrame", fn).Int()
}

func (w HTMLWindow) CancelAnimationFrame(id int) {
	w.jsValue.Call("cancelAnimationFrame", id)
}

func (w HTMLWindow) DevicePixelRatio() float64 {
	v := w.jsValue.Get("devicePixelRatio")
	if v.IsUndefined() {
		return 1
	}
	return v.Float()
}

type HTMLDocument struct{ jsValue js.Value }

func Document() HTMLDocument {
	return HTMLDocument{js.Global().Get("document")}
}

func (d HTMLDocument) ElementByID(id string) (Element, error) {
	v := d.jsValue.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return Element{}, fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return Element{jsValue: v}, nil
}

func (d HTMLDocument) CanvasByID(id string) (Canvas, error) {
	el, err := d.ElementByID(id)
	if err != nil {
		return Canvas{}, err
	}
	return Canvas{Element: el}, nil
}

type Element struct{ jsValue js.Value }

func (e Element) JSValue() js.Value { return e.jsValue }

// AddEventListener registers fn for the given event. The js.Func stays
// registered for the life of the page; the caller must not Release it.
func (e Element) AddEventListener(event string, fn js.Func) {
	e.jsValue.Call("addEventListener", event, fn)
}

// FloatValue parses the element's value attribute as a float. Used for
// range inputs; a malformed value reads as 0.
func (e Element) FloatValue() float64 {
	f, err := strconv.ParseFloat(e.jsValue.Get("value").String(), 64)
	if err != nil {
		return 0
	}
	return f
}

type Canvas struct{ Element }

func (c Canvas) ClientWidth() int  { return c.jsValue.Get("clientWidth").Int() }
func (c Canvas) ClientHeight() int { return c.jsValue.Get("clientHeight").Int() }

func (c Canvas) Width() int      { return c.jsValue.Get("width").Int() }
func (c Canvas) Height() int     { return c.jsValue.Get("height").Int() }
func (c Canvas) SetWidth(w int)  { c.jsValue.Set("width", w) }
func (c Canvas) SetHeight(h int) { c.jsValue.Set("height", h) }

// GetContext returns the named drawing context, or a null js.Value if the
// browser cannot provide one.
func (c Canvas) GetContext(kind string) js.Value {
	return c.jsValue.Call("getContext", kind)
}
