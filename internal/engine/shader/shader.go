// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader build errors. The driver's info log is appended to the message.
var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %w: %s", name, ErrCompile, log)
	}

	return shader, nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no info log)"
	}
	log := make([]byte, length)
	read(&log[0])
	return gl.GoStr(&log[0])
}

// Uniform returns the uniform location for the given name, or -1 if the
// uniform is not active.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// SubroutineIndex returns the index of the named subroutine function in
// stage (gl.VERTEX_SHADER or gl.FRAGMENT_SHADER).
func SubroutineIndex(program, stage uint32, name string) (uint32, bool) {
	idx := gl.GetSubroutineIndex(program, stage, gl.Str(name+"\x00"))
	return idx, idx != gl.INVALID_INDEX
}

// SubroutineUniform returns the location of a subroutine uniform, or -1.
func SubroutineUniform(program, stage uint32, name string) int32 {
	return gl.GetSubroutineUniformLocation(program, stage, gl.Str(name+"\x00"))
}

// SubroutineUniformCount returns the number of active subroutine uniform
// locations in stage. This is the length glUniformSubroutinesuiv expects.
func SubroutineUniformCount(program, stage uint32) int {
	var n int32
	gl.GetProgramStageiv(program, stage, gl.ACTIVE_SUBROUTINE_UNIFORM_LOCATIONS, &n)
	return int(n)
}
