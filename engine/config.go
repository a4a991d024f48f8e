package engine

import (
	"fmt"

	"github.com/mokiat/gog/opt"
)

// maxIndex is the largest vertex index addressable with 16-bit indices.
const maxIndex = 1 << 16

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// ProgramSpec names a shader program and the two sources it links.
type ProgramSpec struct {
	Name           string
	VertexSource   string
	FragmentSource string
}

// DrawFunc runs once per program per frame, after the program and mesh
// buffers are bound and before the grid rows are drawn. It is the seam where
// the embedding application sets uniforms; the renderer itself computes no
// view transform.
type DrawFunc func(gl GL, name string, p Program, now float64)

// Config describes a Renderer.
type Config struct {
	// GridDimension is the number of grid cells along each axis. The mesh has
	// (GridDimension+1)² vertices, which must fit in 16-bit indices.
	GridDimension int

	// Programs lists the shader programs to compile, in draw order.
	Programs []ProgramSpec

	// Extensions lists extensions the fragment stages require. Missing
	// extensions fail acquisition with ErrExtensionUnavailable.
	Extensions []string

	// ClearColor overrides the default black clear color.
	ClearColor opt.T[Color]

	// Draw is the optional per-program uniform hook.
	Draw DrawFunc
}

// Validate checks the config before any GPU work happens. The 16-bit index
// bound is enforced here, not in the mesh generator.
func (c Config) Validate() error {
	if c.GridDimension <= 0 {
		return fmt.Errorf("%w: grid dimension %d must be positive", ErrInvalidConfig, c.GridDimension)
	}
	if n := (c.GridDimension + 1) * (c.GridDimension + 1); n > maxIndex {
		return fmt.Errorf("%w: grid dimension %d needs %d vertices, limit is %d", ErrInvalidConfig, c.GridDimension, n, maxIndex)
	}
	if len(c.Programs) == 0 {
		return fmt.Errorf("%w: no programs specified", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Programs))
	for _, p := range c.Programs {
		if p.Name == "" {
			return fmt.Errorf("%w: program with empty name", ErrInvalidConfig)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate program %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
		if p.VertexSource == "" || p.FragmentSource == "" {
			return fmt.Errorf("%w: program %q is missing a shader source id", ErrInvalidConfig, p.Name)
		}
	}
	return nil
}
