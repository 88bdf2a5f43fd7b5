package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in world space.
// Rotation holds Euler angles in radians, applied X then Y then Z. A zero
// Scale is unit scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

// NewTransform returns a transform at the origin with no rotation and unit scale.
func NewTransform() Transform {
	return Transform{Scale: 1}
}

// At returns a default transform moved to position p.
func At(p mgl32.Vec3) Transform {
	return Transform{Position: p, Scale: 1}
}

// scale returns the effective uniform scale. Zero means unit scale, so a
// Transform literal that leaves Scale unset still draws at full size.
func (t Transform) scale() float32 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Matrix returns the model matrix T * Rx * Ry * Rz * S in column-major order.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.scale()
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(s, s, s))
}

// InverseMatrix returns the inverse of Matrix, composed symbolically from the
// inverse of each factor in reverse order. It is exact for rotation,
// translation and uniform scale, which is everything a Transform can express,
// and avoids a general 4x4 inversion per frame.
func (t Transform) InverseMatrix() mgl32.Mat4 {
	s := 1 / t.scale()
	m := mgl32.Scale3D(s, s, s)
	m = m.Mul4(mgl32.HomogRotate3DZ(-t.Rotation.Z()))
	m = m.Mul4(mgl32.HomogRotate3DY(-t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DX(-t.Rotation.X()))
	return m.Mul4(mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z()))
}

// TransformPoint applies the model matrix to p.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix())
}
