package engine

import (
	"errors"
	"strings"
	"testing"
)

func testSources() map[string]Source {
	return map[string]Source{
		"grid.vert":      {Text: "vertex source", Stage: StageVertex},
		"terrain.frag":   {Text: "terrain fragment source", Stage: StageFragment},
		"wireframe.frag": {Text: "wireframe fragment source", Stage: StageFragment},
	}
}

func TestCompileProgramsSharesSources(t *testing.T) {
	gl := newFakeGL()
	resolver := newFakeResolver(testSources())
	specs := []ProgramSpec{
		{Name: "terrain", VertexSource: "grid.vert", FragmentSource: "terrain.frag"},
		{Name: "wireframe", VertexSource: "grid.vert", FragmentSource: "wireframe.frag"},
	}

	programs, err := compilePrograms(gl, resolver, specs)
	if err != nil {
		t.Fatalf("compilePrograms() = %v, want nil error", err)
	}
	if len(programs) != 2 {
		t.Errorf("got %d programs, want 2", len(programs))
	}
	if programs["terrain"] == 0 || programs["wireframe"] == 0 {
		t.Errorf("programs = %v, want non-zero handles for terrain and wireframe", programs)
	}

	// The shared vertex source is resolved and compiled once, not per program.
	if got := resolver.calls["grid.vert"]; got != 1 {
		t.Errorf("grid.vert resolved %d times, want 1", got)
	}
	if got := gl.shadersCreated; got != 3 {
		t.Errorf("created %d shaders, want 3 (one per unique source)", got)
	}

	// Shader objects are released once linking is done.
	if got := len(gl.shaders); got != 0 {
		t.Errorf("%d shaders still live after success, want 0", got)
	}
	if got := len(gl.programs); got != 2 {
		t.Errorf("%d programs live, want 2", got)
	}
}

func TestCompileProgramsRollsBackOnCompileFailure(t *testing.T) {
	gl := newFakeGL()
	gl.failCompile = map[string]string{
		"wireframe fragment source": "ERROR: 0:12: 'fwidth' : no matching overloaded function found",
	}
	resolver := newFakeResolver(testSources())
	specs := []ProgramSpec{
		{Name: "terrain", VertexSource: "grid.vert", FragmentSource: "terrain.frag"},
		{Name: "wireframe", VertexSource: "grid.vert", FragmentSource: "wireframe.frag"},
	}

	_, err := compilePrograms(gl, resolver, specs)
	if err == nil {
		t.Fatal("compilePrograms() = nil error, want CompileError")
	}

	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("compilePrograms() = %v, want *CompileError", err)
	}
	if compileErr.Source != "wireframe.frag" {
		t.Errorf("CompileError.Source = %q, want %q", compileErr.Source, "wireframe.frag")
	}
	if !strings.Contains(compileErr.Log, "fwidth") {
		t.Errorf("CompileError.Log = %q, want driver diagnostic", compileErr.Log)
	}

	// Everything created before the failure is rolled back: the first
	// program, its linked shaders, and the shared vertex shader.
	if got := len(gl.shaders); got != 0 {
		t.Errorf("%d shaders still live after rollback, want 0", got)
	}
	if got := len(gl.programs); got != 0 {
		t.Errorf("%d programs still live after rollback, want 0", got)
	}
	if gl.programsCreated != 1 {
		t.Errorf("created %d programs before failing, want 1", gl.programsCreated)
	}
}

func TestCompileProgramsRollsBackOnLinkFailure(t *testing.T) {
	gl := newFakeGL()
	gl.failLink = "varying vGrid not written by vertex shader"
	resolver := newFakeResolver(testSources())
	specs := []ProgramSpec{
		{Name: "terrain", VertexSource: "grid.vert", FragmentSource: "terrain.frag"},
	}

	_, err := compilePrograms(gl, resolver, specs)
	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("compilePrograms() = %v, want *LinkError", err)
	}
	if linkErr.Program != "terrain" {
		t.Errorf("LinkError.Program = %q, want %q", linkErr.Program, "terrain")
	}
	if linkErr.Log != gl.failLink {
		t.Errorf("LinkError.Log = %q, want %q", linkErr.Log, gl.failLink)
	}

	if len(gl.shaders) != 0 || len(gl.programs) != 0 {
		t.Errorf("%d shaders and %d programs live after rollback, want 0 and 0", len(gl.shaders), len(gl.programs))
	}
}

func TestCompileProgramsStageMismatch(t *testing.T) {
	gl := newFakeGL()
	resolver := newFakeResolver(testSources())
	specs := []ProgramSpec{
		// A fragment source in the vertex slot is a configuration error.
		{Name: "broken", VertexSource: "terrain.frag", FragmentSource: "wireframe.frag"},
	}

	_, err := compilePrograms(gl, resolver, specs)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("compilePrograms() = %v, want ErrInvalidConfig", err)
	}
	if len(gl.shaders) != 0 || len(gl.programs) != 0 {
		t.Errorf("%d shaders and %d programs live after rollback, want 0 and 0", len(gl.shaders), len(gl.programs))
	}
}

func TestCompileProgramsUnknownSource(t *testing.T) {
	gl := newFakeGL()
	resolver := newFakeResolver(testSources())
	specs := []ProgramSpec{
		{Name: "terrain", VertexSource: "grid.vert", FragmentSource: "nope.frag"},
	}

	_, err := compilePrograms(gl, resolver, specs)
	if err == nil {
		t.Fatal("compilePrograms() = nil error, want resolve error")
	}
	if !strings.Contains(err.Error(), "nope.frag") {
		t.Errorf("error %q does not identify the missing source", err)
	}
	if len(gl.shaders) != 0 || len(gl.programs) != 0 {
		t.Errorf("%d shaders and %d programs live after rollback, want 0 and 0", len(gl.shaders), len(gl.programs))
	}
}
