package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewTransform(t *testing.T) {
	tr := NewTransform()
	if tr.Scale != 1 {
		t.Errorf("default scale = %v, want 1", tr.Scale)
	}
	if !matNear(tr.Matrix(), mgl32.Ident4(), 1e-6) {
		t.Error("default transform should produce identity matrix")
	}
}

func TestMatrixTranslation(t *testing.T) {
	tr := At(mgl32.Vec3{5, 10, 15})
	m := tr.Matrix()

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("translation = (%v, %v, %v), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestMatrixOrder(t *testing.T) {
	// Scale is applied before rotation, rotation before translation.
	tr := Transform{
		Position: mgl32.Vec3{1, 0, 0},
		Rotation: mgl32.Vec3{0, float32(math.Pi / 2), 0},
		Scale:    2,
	}
	got := tr.TransformPoint(mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{1, 0, -2}
	if !vecNear(got, want, 1e-5) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestInverseRoundTripTranslation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		tr := At(randVec(rng, 50))
		m := tr.InverseMatrix().Mul4(tr.Matrix())

		p := randVec(rng, 50)
		got := mgl32.TransformCoordinate(p, m)
		if !vecNear(got, p, 1e-5) {
			t.Fatalf("round trip %v -> %v (transform %+v)", p, got, tr)
		}
	}
}

func TestInverseRoundTripRigidBody(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		tr := Transform{
			Position: randVec(rng, 20),
			Rotation: randVec(rng, math.Pi),
			Scale:    1,
		}
		p := randVec(rng, 20)

		world := mgl32.TransformCoordinate(p, tr.Matrix())
		back := mgl32.TransformCoordinate(world, tr.InverseMatrix())
		if !vecNear(back, p, 1e-4) {
			t.Fatalf("round trip %v -> %v (transform %+v)", p, back, tr)
		}
	}
}

func TestInverseUniformScale(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.Vec3{0.3, -1.2, 2.0},
		Scale:    4,
	}
	m := tr.InverseMatrix().Mul4(tr.Matrix())
	if !matNear(m, mgl32.Ident4(), 1e-4) {
		t.Errorf("inverse * matrix = %v, want identity", m)
	}
}

func TestZeroScaleIsUnitScale(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{"translation only", Transform{Position: mgl32.Vec3{1, 2, 3}}},
		{"rotated", Transform{Position: mgl32.Vec3{-4, 0, 2}, Rotation: mgl32.Vec3{0.5, 1, -0.25}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := tt.tr
			unit.Scale = 1
			if !matNear(tt.tr.Matrix(), unit.Matrix(), 1e-6) {
				t.Errorf("Matrix() = %v, want %v", tt.tr.Matrix(), unit.Matrix())
			}

			for i, v := range tt.tr.InverseMatrix() {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("inverse element %d is not finite: %v", i, v)
				}
			}

			p := mgl32.Vec3{4, 5, 6}
			world := tt.tr.TransformPoint(p)
			back := mgl32.TransformCoordinate(world, tt.tr.InverseMatrix())
			if !vecNear(back, p, 1e-4) {
				t.Errorf("round trip %v -> %v -> %v", p, world, back)
			}
		})
	}
}

func TestPerspectiveMatrix(t *testing.T) {
	cam := NewPerspectiveCamera(90, 0.1, 100)
	m := cam.ProjectionMatrix(480, 480)

	// 90 degree FOV at aspect 1 gives f = 1
	if math.Abs(float64(m[0]-1)) > 1e-5 || math.Abs(float64(m[5]-1)) > 1e-5 {
		t.Errorf("focal terms = (%v, %v), want (1, 1)", m[0], m[5])
	}
	if m[11] != -1 {
		t.Errorf("m[11] = %v, want -1", m[11])
	}
	if m[15] != 0 {
		t.Errorf("m[15] = %v, want 0", m[15])
	}

	wide := cam.ProjectionMatrix(960, 480)
	if math.Abs(float64(wide[0]-0.5)) > 1e-5 {
		t.Errorf("aspect 2: m[0] = %v, want 0.5", wide[0])
	}

	// Zero height must not divide by zero
	degenerate := cam.ProjectionMatrix(480, 0)
	if math.IsInf(float64(degenerate[0]), 0) || math.IsNaN(float64(degenerate[0])) {
		t.Errorf("zero height produced %v", degenerate[0])
	}
}

func TestBakeWithoutEye(t *testing.T) {
	cam := NewCamera()
	baked := cam.Bake(nil, 480, 480, nil)

	if !matNear(baked.View, mgl32.Ident4(), 1e-6) {
		t.Error("view without eye should be identity")
	}
	if baked.Target != RenderTargetWindow {
		t.Errorf("target = %v, want window", baked.Target)
	}
	if baked.Params.ClearColour == nil || *baked.Params.ClearColour != (RGBA{0, 0, 0, 1}) {
		t.Errorf("clear colour = %v, want opaque black", baked.Params.ClearColour)
	}
	if baked.FirstLightColour() != White {
		t.Error("no lights should yield white")
	}
}

func TestBakeIsSnapshot(t *testing.T) {
	cam := NewCamera()
	eye := At(mgl32.Vec3{0, 0, 5})
	lights := []BakedLight{{Transform: NewTransform(), Light: Light{Colour: Red}}}

	baked := cam.Bake(&eye, 480, 480, lights)

	// Mutating live state must not affect the baked packet
	cam.Params.ClearColour.R = 1
	lights[0].Light.Colour = Blue
	eye.Position = mgl32.Vec3{}

	if baked.Params.ClearColour.R != 0 {
		t.Error("baked clear colour shares memory with the camera")
	}
	if baked.FirstLightColour() != Red {
		t.Error("baked lights share memory with the input slice")
	}
	got := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 5}, baked.View)
	if !vecNear(got, mgl32.Vec3{}, 1e-5) {
		t.Errorf("eye position in view space = %v, want origin", got)
	}
}

func TestBakeDepthOnly(t *testing.T) {
	cam := NewCamera()
	cam.Params.ClearColour = nil

	baked := cam.Bake(nil, 1, 1, nil)
	if baked.Params.ClearColour != nil {
		t.Error("nil clear colour should stay nil")
	}
}

func randVec(rng *rand.Rand, scale float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((rng.Float64()*2 - 1) * scale),
		float32((rng.Float64()*2 - 1) * scale),
		float32((rng.Float64()*2 - 1) * scale),
	}
}

func vecNear(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func matNear(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}
