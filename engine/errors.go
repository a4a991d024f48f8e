package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrContextUnavailable is returned when no graphics context can be
	// obtained from the surface at all. This is fatal for the renderer:
	// there is no recovery path from a context that never existed.
	ErrContextUnavailable = errors.New("engine: graphics context unavailable")

	// ErrExtensionUnavailable is returned when a required extension is not
	// supported by the acquired context.
	ErrExtensionUnavailable = errors.New("engine: required extension unavailable")

	// ErrInvalidConfig is returned by Config.Validate and wraps the specific
	// violation.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

// CompileError reports a shader compilation failure. Source is the logical
// source id, Log the diagnostic text from the driver.
type CompileError struct {
	Source string
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("engine: compiling shader %q: %s", e.Source, e.Log)
}

// LinkError reports a program link failure. Program is the logical program
// name, Log the diagnostic text from the driver.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("engine: linking program %q: %s", e.Program, e.Log)
}
