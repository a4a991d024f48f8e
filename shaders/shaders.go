// Package shaders embeds the GLSL sources for the terrain renderer and
// resolves logical source ids to their text and pipeline stage.
package shaders

import (
	"embed"
	"fmt"
	"strings"

	"github.com/gridscape/gridscape/engine"
)

//go:embed *.vert *.frag
var sourceFS embed.FS

// Library resolves shader source ids against the embedded sources. The stage
// comes from the filename suffix: .vert for vertex, .frag for fragment.
type Library struct{}

func (Library) Resolve(id string) (engine.Source, error) {
	stage, err := stageOf(id)
	if err != nil {
		return engine.Source{}, err
	}
	text, err := sourceFS.ReadFile(id)
	if err != nil {
		return engine.Source{}, fmt.Errorf("shaders: unknown source %q", id)
	}
	return engine.Source{Text: string(text), Stage: stage}, nil
}

func stageOf(id string) (engine.Stage, error) {
	switch {
	case strings.HasSuffix(id, ".vert"):
		return engine.StageVertex, nil
	case strings.HasSuffix(id, ".frag"):
		return engine.StageFragment, nil
	default:
		return 0, fmt.Errorf("shaders: cannot determine stage of %q", id)
	}
}

// Programs is the standard program set, in draw order: the terrain fill
// first, the anti-aliased wireframe overlay on top. Both share grid.vert.
var Programs = []engine.ProgramSpec{
	{Name: "terrain", VertexSource: "grid.vert", FragmentSource: "terrain.frag"},
	{Name: "wireframe", VertexSource: "grid.vert", FragmentSource: "wireframe.frag"},
}

// Extensions lists the extensions the standard fragment shaders require.
// wireframe.frag uses fwidth for its edge factor.
var Extensions = []string{"OES_standard_derivatives"}
