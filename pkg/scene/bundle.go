package scene

import "github.com/Faultbox/rad-engine/pkg/ecs"

// CameraBundle spawns a camera together with its transform.
type CameraBundle struct {
	Transform Transform
	Camera    Camera
}

// NewCameraBundle returns a default camera at the origin.
func NewCameraBundle() CameraBundle {
	return CameraBundle{Transform: NewTransform(), Camera: NewCamera()}
}

// Insert implements ecs.Bundle.
func (b CameraBundle) Insert(w *ecs.World, e ecs.Entity) {
	ecs.Insert(w, e, b.Transform)
	ecs.Insert(w, e, b.Camera)
}

// LightBundle spawns a light together with its transform.
type LightBundle struct {
	Transform Transform
	Light     Light
}

// Insert implements ecs.Bundle.
func (b LightBundle) Insert(w *ecs.World, e ecs.Entity) {
	ecs.Insert(w, e, b.Transform)
	ecs.Insert(w, e, b.Light)
}
