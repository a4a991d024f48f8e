//go:build js && wasm

package main

import (
	"log"
	"log/slog"
	"syscall/js"

	"github.com/gridscape/gridscape/client/browser"
	"github.com/gridscape/gridscape/client/webgl"
	"github.com/gridscape/gridscape/common/math32"
	"github.com/gridscape/gridscape/engine"
	"github.com/gridscape/gridscape/shaders"
	"github.com/mokiat/gog/opt"
	"github.com/mroth/weightedrand/v2"
)

const gridDimension = 120

// palette is a color scheme for the terrain. One is chosen per page load.
type palette struct {
	name  string
	base  [3]float32
	fog   [3]float32
	line  [3]float32
	clear engine.Color
}

var palettes = []weightedrand.Choice[palette, int]{
	weightedrand.NewChoice(palette{
		name:  "dusk",
		base:  [3]float32{0.13, 0.10, 0.22},
		fog:   [3]float32{0.28, 0.16, 0.30},
		line:  [3]float32{0.95, 0.60, 0.90},
		clear: engine.Color{R: 0.05, G: 0.04, B: 0.10, A: 1},
	}, 5),
	weightedrand.NewChoice(palette{
		name:  "dawn",
		base:  [3]float32{0.10, 0.16, 0.24},
		fog:   [3]float32{0.85, 0.55, 0.35},
		line:  [3]float32{1.00, 0.85, 0.60},
		clear: engine.Color{R: 0.09, G: 0.11, B: 0.18, A: 1},
	}, 3),
	weightedrand.NewChoice(palette{
		name:  "mono",
		base:  [3]float32{0.08, 0.08, 0.08},
		fog:   [3]float32{0.02, 0.02, 0.02},
		line:  [3]float32{0.20, 0.95, 0.45},
		clear: engine.Color{R: 0, G: 0, B: 0, A: 1},
	}, 2),
}

// sliders are the page's range inputs. Their values feed uniforms each
// frame; the renderer itself knows nothing about them.
type sliders struct {
	spread browser.Element
	tilt   browser.Element
	lift   browser.Element
}

func lookupSliders(doc browser.HTMLDocument) (sliders, error) {
	var s sliders
	var err error
	if s.spread, err = doc.ElementByID("spread"); err != nil {
		return s, err
	}
	if s.tilt, err = doc.ElementByID("tilt"); err != nil {
		return s, err
	}
	s.lift, err = doc.ElementByID("lift")
	return s, err
}

func main() {
	log.Println("Started client!")
	engine.SetLogger(slog.Default())

	if err := run(); err != nil {
		log.Printf("run() failed: %v", err)
		if fn := js.Global().Get("showError"); !fn.IsUndefined() {
			fn.Invoke("Startup error: " + err.Error())
		}
		return
	}

	<-make(chan bool)
}

func run() error {
	doc := browser.Document()
	canvas, err := doc.CanvasByID("scene")
	if err != nil {
		return err
	}
	ctl, err := lookupSliders(doc)
	if err != nil {
		return err
	}

	chooser, err := weightedrand.NewChooser(palettes...)
	if err != nil {
		return err
	}
	pal := chooser.Pick()
	log.Printf("palette: %s", pal.name)

	win := browser.Window()
	cfg := engine.Config{
		GridDimension: gridDimension,
		Programs:      shaders.Programs,
		Extensions:    shaders.Extensions,
		ClearColor:    opt.V(pal.clear),
		Draw:          makeDrawFunc(ctl, pal),
	}

	r, err := engine.New(webgl.NewCanvasSurface(win, canvas), browser.NewAnimationScheduler(win), shaders.Library{}, cfg)
	if err != nil {
		return err
	}
	r.Start()
	return nil
}

// makeDrawFunc binds slider values and the palette to shader uniforms, once
// per program per frame.
func makeDrawFunc(ctl sliders, pal palette) engine.DrawFunc {
	return func(gl engine.GL, name string, p engine.Program, now float64) {
		spread := math32.Clamp(float32(ctl.spread.FloatValue()), 0.1, 4)
		tilt := math32.Clamp(float32(ctl.tilt.FloatValue()), 0, 1)
		lift := math32.Clamp(float32(ctl.lift.FloatValue()), 0, 2)

		gl.Uniform1f(gl.UniformLocation(p, "u_spread"), spread/float32(gridDimension))
		gl.Uniform1f(gl.UniformLocation(p, "u_tilt"), tilt)
		gl.Uniform1f(gl.UniformLocation(p, "u_lift"), lift)
		gl.Uniform1f(gl.UniformLocation(p, "u_time"), float32(now)/1000)

		switch name {
		case "terrain":
			gl.Uniform3f(gl.UniformLocation(p, "u_baseColor"), pal.base[0], pal.base[1], pal.base[2])
			gl.Uniform3f(gl.UniformLocation(p, "u_fogColor"), pal.fog[0], pal.fog[1], pal.fog[2])
		case "wireframe":
			gl.Uniform3f(gl.UniformLocation(p, "u_lineColor"), pal.line[0], pal.line[1], pal.line[2])
		}
	}
}
