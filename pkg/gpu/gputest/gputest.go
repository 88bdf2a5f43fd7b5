// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"maps"

	"github.com/Faultbox/rad-engine/pkg/gpu"
)

// Buffers is a recorded mesh upload.
type Buffers struct {
	Vertices []gpu.Vertex
	Indices  []uint16
	Prim     gpu.Primitive
	Released bool
}

func (b *Buffers) VertexCount() int         { return len(b.Vertices) }
func (b *Buffers) IndexCount() int          { return len(b.Indices) }
func (b *Buffers) Primitive() gpu.Primitive { return b.Prim }
func (b *Buffers) Release()                 { b.Released = true }

// Program is a recorded program compilation.
type Program struct {
	Vertex   string
	Fragment string
	Released bool
}

func (p *Program) Release() { p.Released = true }

// Clear is a recorded clear call. Color is nil for depth-only clears.
type Clear struct {
	Color *[4]float32
	Depth float32
}

// DrawCall is a recorded draw.
type DrawCall struct {
	Buffers  *Buffers
	Program  *Program
	Uniforms gpu.Uniforms
	Params   gpu.DrawParameters
}

// Frame records the calls made against one acquired frame.
type Frame struct {
	Clears   []Clear
	Draws    []DrawCall
	Finished bool

	dev *Device
}

func (f *Frame) ClearColorAndDepth(color [4]float32, depth float32) {
	c := color
	f.Clears = append(f.Clears, Clear{Color: &c, Depth: depth})
}

func (f *Frame) ClearDepth(depth float32) {
	f.Clears = append(f.Clears, Clear{Depth: depth})
}

func (f *Frame) Draw(buffers gpu.Buffers, program gpu.Program, uniforms gpu.Uniforms, params gpu.DrawParameters) error {
	if f.Finished {
		return gpu.ErrFrameFinished
	}
	b, ok := buffers.(*Buffers)
	if !ok {
		return fmt.Errorf("gputest: foreign buffers %T", buffers)
	}
	p, ok := program.(*Program)
	if !ok {
		return fmt.Errorf("gputest: foreign program %T", program)
	}
	if b.Released || p.Released {
		return gpu.ErrReleased
	}
	if f.dev.DrawErr != nil {
		if err := f.dev.DrawErr(b, uniforms); err != nil {
			return err
		}
	}
	f.Draws = append(f.Draws, DrawCall{
		Buffers:  b,
		Program:  p,
		Uniforms: maps.Clone(uniforms),
		Params:   params,
	})
	return nil
}

func (f *Frame) Finish() error {
	if f.Finished {
		return gpu.ErrFrameFinished
	}
	f.Finished = true
	return nil
}

// Device records every resource and frame it hands out.
// The zero value is ready to use.
type Device struct {
	Meshes   []*Buffers
	Programs []*Program
	Frames   []*Frame
	Presents int
	Width    int
	Height   int

	// Failure injection.
	MeshErr    error
	ProgramErr error
	FrameErr   error
	DrawErr    func(b *Buffers, u gpu.Uniforms) error
}

// New returns an empty recording device.
func New() *Device {
	return &Device{}
}

func (d *Device) CreateMesh(vertices []gpu.Vertex, indices []uint16, prim gpu.Primitive) (gpu.Buffers, error) {
	if d.MeshErr != nil {
		return nil, d.MeshErr
	}
	if indices == nil {
		indices = gpu.SequentialIndices(len(vertices))
	}
	b := &Buffers{
		Vertices: append([]gpu.Vertex(nil), vertices...),
		Indices:  append([]uint16(nil), indices...),
		Prim:     prim,
	}
	d.Meshes = append(d.Meshes, b)
	return b, nil
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if d.ProgramErr != nil {
		return nil, d.ProgramErr
	}
	p := &Program{Vertex: vertexSrc, Fragment: fragmentSrc}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *Device) BeginFrame() (gpu.Frame, error) {
	if d.FrameErr != nil {
		return nil, d.FrameErr
	}
	f := &Frame{dev: d}
	d.Frames = append(d.Frames, f)
	return f, nil
}

func (d *Device) Present() error {
	d.Presents++
	return nil
}

func (d *Device) Resize(width, height int) {
	d.Width = width
	d.Height = height
}

// Clears returns every clear across all frames in call order.
func (d *Device) Clears() []Clear {
	var out []Clear
	for _, f := range d.Frames {
		out = append(out, f.Clears...)
	}
	return out
}

// Draws returns every draw across all frames in call order.
func (d *Device) Draws() []DrawCall {
	var out []DrawCall
	for _, f := range d.Frames {
		out = append(out, f.Draws...)
	}
	return out
}

// Reset forgets recorded frames and presents but keeps resources.
func (d *Device) Reset() {
	d.Frames = nil
	d.Presents = 0
}

var _ gpu.Device = (*Device)(nil)
