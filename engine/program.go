package engine

import "fmt"

// compilePrograms compiles and links the given program specs against gl.
// Each unique source id is resolved and compiled exactly once, so programs
// sharing a source share the compiled shader.
//
// The batch is transactional: on any failure every shader and program created
// so far is deleted before the error propagates, leaving no GPU objects
// behind. On success the cached shaders are deleted too; linked programs keep
// their binaries.
func compilePrograms(gl GL, resolver SourceResolver, specs []ProgramSpec) (map[string]Program, error) {
	type cached struct {
		shader Shader
		stage  Stage
	}
	shaders := make(map[string]cached)
	programs := make(map[string]Program, len(specs))

	fail := func(err error) (map[string]Program, error) {
		for _, p := range programs {
			gl.DeleteProgram(p)
		}
		for _, c := range shaders {
			gl.DeleteShader(c.shader)
		}
		return nil, err
	}

	compile := func(id string, want Stage) (Shader, error) {
		if c, ok := shaders[id]; ok {
			if c.stage != want {
				return 0, fmt.Errorf("%w: shader %q has stage %s, want %s", ErrInvalidConfig, id, c.stage, want)
			}
			return c.shader, nil
		}
		src, err := resolver.Resolve(id)
		if err != nil {
			return 0, fmt.Errorf("engine: resolving shader %q: %w", id, err)
		}
		if src.Stage != want {
			return 0, fmt.Errorf("%w: shader %q has stage %s, want %s", ErrInvalidConfig, id, src.Stage, want)
		}
		s := gl.CreateShader(src.Stage)
		gl.ShaderSource(s, src.Text)
		gl.CompileShader(s)
		if !gl.ShaderCompiled(s) {
			log := gl.ShaderInfoLog(s)
			gl.DeleteShader(s)
			return 0, &CompileError{Source: id, Log: log}
		}
		shaders[id] = cached{shader: s, stage: src.Stage}
		return s, nil
	}

	for _, spec := range specs {
		vs, err := compile(spec.VertexSource, StageVertex)
		if err != nil {
			return fail(err)
		}
		fs, err := compile(spec.FragmentSource, StageFragment)
		if err != nil {
			return fail(err)
		}
		p := gl.CreateProgram()
		gl.AttachShader(p, vs)
		gl.AttachShader(p, fs)
		gl.LinkProgram(p)
		if !gl.ProgramLinked(p) {
			log := gl.ProgramInfoLog(p)
			gl.DeleteProgram(p)
			return fail(&LinkError{Program: spec.Name, Log: log})
		}
		programs[spec.Name] = p
	}

	// The shader objects are only needed while linking.
	for _, c := range shaders {
		gl.DeleteShader(c.shader)
	}
	return programs, nil
}
