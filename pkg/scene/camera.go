package scene

import "github.com/go-gl/mathgl/mgl32"

// RenderTarget selects where a camera draws.
type RenderTarget int

const (
	// RenderTargetWindow draws to the application's main window.
	RenderTargetWindow RenderTarget = iota
)

// String returns the target name.
func (t RenderTarget) String() string {
	switch t {
	case RenderTargetWindow:
		return "window"
	default:
		return "unknown"
	}
}

// ProjectionType produces a projection matrix for a viewport size.
type ProjectionType interface {
	Matrix(width, height int) mgl32.Mat4
}

// Perspective is a perspective projection. FOV is the vertical field of
// view in degrees.
type Perspective struct {
	FOV  float32
	Near float32
	Far  float32
}

// Matrix returns the projection for the given viewport.
func (p Perspective) Matrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 && width > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, p.Near, p.Far)
}

// CameraParameters control how a camera's target is prepared before drawing.
// A nil ClearColour clears depth only.
type CameraParameters struct {
	ClearColour *RGBA
}

// DefaultCameraParameters clears to opaque black.
func DefaultCameraParameters() CameraParameters {
	return CameraParameters{ClearColour: &RGBA{0, 0, 0, 1}}
}

// clone returns a deep copy so baked packets do not share the clear colour.
func (p CameraParameters) clone() CameraParameters {
	if p.ClearColour == nil {
		return p
	}
	c := *p.ClearColour
	return CameraParameters{ClearColour: &c}
}

// Camera renders the scene from its entity's Transform.
type Camera struct {
	Target     RenderTarget
	Projection ProjectionType
	Params     CameraParameters
}

// NewCamera returns a 90 degree perspective camera targeting the window.
func NewCamera() Camera {
	return NewPerspectiveCamera(90, 0.1, 100)
}

// NewPerspectiveCamera returns a window camera with the given projection.
func NewPerspectiveCamera(fov, near, far float32) Camera {
	return Camera{
		Target:     RenderTargetWindow,
		Projection: Perspective{FOV: fov, Near: near, Far: far},
		Params:     DefaultCameraParameters(),
	}
}

// ProjectionMatrix returns the projection for the current window size.
func (c *Camera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	if c.Projection == nil {
		return mgl32.Ident4()
	}
	return c.Projection.Matrix(width, height)
}

// BakedCamera is an immutable per-frame snapshot of a camera, decoupled from
// live ECS state for the duration of the frame.
type BakedCamera struct {
	Params     CameraParameters
	Target     RenderTarget
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Lights     []BakedLight
}

// Bake snapshots the camera. eye may be nil, in which case the view is the
// identity. lights is copied.
func (c *Camera) Bake(eye *Transform, width, height int, lights []BakedLight) BakedCamera {
	view := mgl32.Ident4()
	if eye != nil {
		view = eye.InverseMatrix()
	}

	baked := BakedCamera{
		Params:     c.Params.clone(),
		Target:     c.Target,
		View:       view,
		Projection: c.ProjectionMatrix(width, height),
	}
	if len(lights) > 0 {
		baked.Lights = make([]BakedLight, len(lights))
		copy(baked.Lights, lights)
	}
	return baked
}

// FirstLightColour returns the colour of the first baked light, or white.
func (b *BakedCamera) FirstLightColour() Colour {
	if len(b.Lights) == 0 {
		return White
	}
	return b.Lights[0].Light.Colour
}
