// Package gpu defines the rendering backend contract the engine draws
// through. The OpenGL implementation lives in internal/engine/opengl;
// gputest provides a recording fake.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Backend errors.
var (
	ErrUnsupportedUniform = errors.New("unsupported uniform value")
	ErrReleased           = errors.New("resource already released")
	ErrFrameFinished      = errors.New("frame already finished")
)

// Vertex is the engine's vertex layout: position, normal, uv.
// It is tightly packed and matches attribute locations 0, 1 and 2.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the size of Vertex in bytes.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Attribute offsets within Vertex, in bytes.
const (
	PositionOffset = int(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
	UVOffset       = int(unsafe.Offsetof(Vertex{}.UV))
)

// Primitive is the topology of an index buffer.
type Primitive int

const (
	TrianglesList Primitive = iota
	LinesList
	PointsList
)

// Buffers is an uploaded vertex/index buffer pair.
type Buffers interface {
	VertexCount() int
	IndexCount() int
	Primitive() Primitive
	Release()
}

// Program is a compiled and linked shader program.
type Program interface {
	Release()
}

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// Subroutine selects a shader subroutine implementation for a stage.
type Subroutine struct {
	Stage ShaderStage
	Name  string
}

// Uniforms maps uniform names to values. Supported value types are
// mgl32.Mat4, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, float32, int32, bool and
// Subroutine.
type Uniforms map[string]any

// Mat4 returns the named matrix uniform.
func (u Uniforms) Mat4(name string) (mgl32.Mat4, bool) {
	m, ok := u[name].(mgl32.Mat4)
	return m, ok
}

// Vec3 returns the named vec3 uniform.
func (u Uniforms) Vec3(name string) (mgl32.Vec3, bool) {
	v, ok := u[name].(mgl32.Vec3)
	return v, ok
}

// DepthFunc is a depth comparison.
type DepthFunc int

const (
	DepthAlways DepthFunc = iota
	DepthLess
	DepthLessEqual
)

// DrawParameters is the fixed-function state for one draw call.
type DrawParameters struct {
	DepthTest  DepthFunc
	DepthWrite bool
}

// DefaultDrawParameters enables depth testing with less-than and depth writes.
func DefaultDrawParameters() DrawParameters {
	return DrawParameters{
		DepthTest:  DepthLess,
		DepthWrite: true,
	}
}

// Frame is a render target acquired for one camera in one frame.
type Frame interface {
	ClearColorAndDepth(color [4]float32, depth float32)
	ClearDepth(depth float32)
	Draw(buffers Buffers, program Program, uniforms Uniforms, params DrawParameters) error
	Finish() error
}

// Device creates GPU resources and frames. All methods must be called on
// the thread that owns the GPU context.
type Device interface {
	// CreateMesh uploads vertices and indices. A nil indices slice means the
	// implicit 0..n triangle list.
	CreateMesh(vertices []Vertex, indices []uint16, primitive Primitive) (Buffers, error)
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	// BeginFrame acquires the main window's framebuffer.
	BeginFrame() (Frame, error)
	// Present shows everything drawn since the last Present.
	Present() error
	Resize(width, height int)
}

// SequentialIndices returns 0..n-1 as 16-bit indices.
func SequentialIndices(n int) []uint16 {
	idx := make([]uint16, n)
	for i := range idx {
		idx[i] = uint16(i)
	}
	return idx
}
