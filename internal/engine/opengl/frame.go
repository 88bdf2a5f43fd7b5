package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rad-engine/internal/engine/shader"
	"github.com/Faultbox/rad-engine/pkg/gpu"
)

type frame struct {
	finished bool
}

func (f *frame) ClearColorAndDepth(color [4]float32, depth float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepth(float64(depth))
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (f *frame) ClearDepth(depth float32) {
	gl.ClearDepth(float64(depth))
	gl.DepthMask(true)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (f *frame) Draw(b gpu.Buffers, p gpu.Program, uniforms gpu.Uniforms, params gpu.DrawParameters) error {
	if f.finished {
		return gpu.ErrFrameFinished
	}
	buf, ok := b.(*buffers)
	if !ok {
		return fmt.Errorf("buffers %T: %w", b, ErrForeignResource)
	}
	prog, ok := p.(*program)
	if !ok {
		return fmt.Errorf("program %T: %w", p, ErrForeignResource)
	}
	if buf.released || prog.released {
		return gpu.ErrReleased
	}

	gl.UseProgram(prog.id)
	if err := prog.bind(uniforms); err != nil {
		return err
	}

	if params.DepthTest == gpu.DepthAlways && !params.DepthWrite {
		gl.Disable(gl.DEPTH_TEST)
	} else {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(glDepthFunc(params.DepthTest))
	}
	gl.DepthMask(params.DepthWrite)

	gl.BindVertexArray(buf.vao)
	gl.DrawElements(glPrimitive(buf.prim), buf.indices, gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)

	return glError("draw")
}

func (f *frame) Finish() error {
	if f.finished {
		return gpu.ErrFrameFinished
	}
	f.finished = true
	return nil
}

// program caches uniform and subroutine lookups for one GL program.
type program struct {
	id       uint32
	released bool

	uniforms    map[string]int32
	subroutines map[uint32]*subroutineTable
}

// subroutineTable holds the selected function for every subroutine uniform
// of one stage. GL resets the selection on every UseProgram, so the whole
// table is uploaded on each draw that sets any of it.
type subroutineTable struct {
	indices   []uint32
	locations map[string]int32
	functions map[string]uint32
}

func newProgram(id uint32) *program {
	return &program{
		id:          id,
		uniforms:    make(map[string]int32),
		subroutines: make(map[uint32]*subroutineTable),
	}
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	gl.DeleteProgram(p.id)
}

func (p *program) location(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		loc = shader.Uniform(p.id, name)
		p.uniforms[name] = loc
	}
	return loc
}

func (p *program) table(stage uint32) *subroutineTable {
	t, ok := p.subroutines[stage]
	if !ok {
		t = &subroutineTable{
			indices:   make([]uint32, shader.SubroutineUniformCount(p.id, stage)),
			locations: make(map[string]int32),
			functions: make(map[string]uint32),
		}
		p.subroutines[stage] = t
	}
	return t
}

func (p *program) selectSubroutine(uniform string, s gpu.Subroutine) (uint32, error) {
	stage := uint32(gl.VERTEX_SHADER)
	if s.Stage == gpu.StageFragment {
		stage = gl.FRAGMENT_SHADER
	}
	t := p.table(stage)

	loc, ok := t.locations[uniform]
	if !ok {
		loc = shader.SubroutineUniform(p.id, stage, uniform)
		t.locations[uniform] = loc
	}
	if loc < 0 || int(loc) >= len(t.indices) {
		return stage, fmt.Errorf("subroutine uniform %q: %w", uniform, gpu.ErrUnsupportedUniform)
	}

	fn, ok := t.functions[s.Name]
	if !ok {
		idx, found := shader.SubroutineIndex(p.id, stage, s.Name)
		if !found {
			return stage, fmt.Errorf("subroutine %q: %w", s.Name, gpu.ErrUnsupportedUniform)
		}
		fn = idx
		t.functions[s.Name] = fn
	}
	t.indices[loc] = fn
	return stage, nil
}

func (p *program) bind(uniforms gpu.Uniforms) error {
	var stages [2]uint32
	n := 0

	for name, value := range uniforms {
		if s, ok := value.(gpu.Subroutine); ok {
			stage, err := p.selectSubroutine(name, s)
			if err != nil {
				return err
			}
			if n == 0 || (n == 1 && stages[0] != stage) {
				stages[n] = stage
				n++
			}
			continue
		}

		loc := p.location(name)
		switch v := value.(type) {
		case mgl32.Mat4:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		case mgl32.Vec4:
			gl.Uniform4fv(loc, 1, &v[0])
		case mgl32.Vec3:
			gl.Uniform3fv(loc, 1, &v[0])
		case mgl32.Vec2:
			gl.Uniform2fv(loc, 1, &v[0])
		case float32:
			gl.Uniform1f(loc, v)
		case int32:
			gl.Uniform1i(loc, v)
		case bool:
			var i int32
			if v {
				i = 1
			}
			gl.Uniform1i(loc, i)
		default:
			return fmt.Errorf("uniform %q of type %T: %w", name, value, gpu.ErrUnsupportedUniform)
		}
	}

	for _, stage := range stages[:n] {
		t := p.subroutines[stage]
		if len(t.indices) > 0 {
			gl.UniformSubroutinesuiv(stage, int32(len(t.indices)), &t.indices[0])
		}
	}
	return nil
}
