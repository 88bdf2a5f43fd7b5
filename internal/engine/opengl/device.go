// Package opengl implements gpu.Device on an OpenGL 4.1 core context.
package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/rad-engine/internal/engine/shader"
	"github.com/Faultbox/rad-engine/internal/logger"
	"github.com/Faultbox/rad-engine/pkg/gpu"
)

// ErrForeignResource is returned when a draw receives buffers or programs
// created by a different device implementation.
var ErrForeignResource = errors.New("resource not created by the OpenGL device")

// Device draws to the default framebuffer of the current GL context.
type Device struct {
	swap   func()
	width  int32
	height int32
	log    *zap.Logger
}

// New initialises OpenGL on the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created, on the
// context's thread. swap presents the back buffer.
func New(swap func(), width, height int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{
		swap: swap,
		log:  logger.Named("OpenGL4"),
	}

	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	d.Resize(width, height)

	return d, nil
}

// Resize handles window resize.
func (d *Device) Resize(width, height int) {
	d.width, d.height = int32(width), int32(height)
	gl.Viewport(0, 0, d.width, d.height)
	d.log.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// CreateMesh uploads vertices and 16-bit indices into a VAO.
func (d *Device) CreateMesh(vertices []gpu.Vertex, indices []uint16, prim gpu.Primitive) (gpu.Buffers, error) {
	if indices == nil {
		indices = gpu.SequentialIndices(len(vertices))
	}

	b := &buffers{
		vertices: int32(len(vertices)),
		indices:  int32(len(indices)),
		prim:     prim,
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*gpu.VertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	stride := int32(gpu.VertexSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, uintptr(gpu.PositionOffset))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(gpu.NormalOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, uintptr(gpu.UVOffset))
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := glError("create mesh"); err != nil {
		b.Release()
		return nil, err
	}

	d.log.Debug("mesh created",
		zap.Uint32("vao", b.vao),
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(indices)),
	)
	return b, nil
}

// CreateProgram compiles and links a program.
func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	id, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	d.log.Debug("shader program created", zap.Uint32("program", id))
	return newProgram(id), nil
}

// BeginFrame binds the default framebuffer.
func (d *Device) BeginFrame() (gpu.Frame, error) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, d.width, d.height)
	return &frame{}, nil
}

// Present swaps the window's buffers.
func (d *Device) Present() error {
	if d.swap != nil {
		d.swap()
	}
	return glError("present")
}

type buffers struct {
	vao, vbo, ebo uint32
	vertices      int32
	indices       int32
	prim          gpu.Primitive
	released      bool
}

func (b *buffers) VertexCount() int         { return int(b.vertices) }
func (b *buffers) IndexCount() int          { return int(b.indices) }
func (b *buffers) Primitive() gpu.Primitive { return b.prim }

func (b *buffers) Release() {
	if b.released {
		return
	}
	b.released = true
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}

func glPrimitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.LinesList:
		return gl.LINES
	case gpu.PointsList:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glDepthFunc(f gpu.DepthFunc) uint32 {
	switch f {
	case gpu.DepthLess:
		return gl.LESS
	case gpu.DepthLessEqual:
		return gl.LEQUAL
	default:
		return gl.ALWAYS
	}
}

// glError returns the first pending GL error, draining the rest.
func glError(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%s: GL error 0x%04x", op, code)
}

var _ gpu.Device = (*Device)(nil)
