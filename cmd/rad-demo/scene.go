package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rad-engine/internal/config"
	"github.com/Faultbox/rad-engine/pkg/ecs"
	"github.com/Faultbox/rad-engine/pkg/material"
	"github.com/Faultbox/rad-engine/pkg/mesh"
	"github.com/Faultbox/rad-engine/pkg/rad"
	"github.com/Faultbox/rad-engine/pkg/scene"
	"github.com/Faultbox/rad-engine/pkg/schedule"
)

// modelSpacing is the distance between models along X.
const modelSpacing = 1.5

// Rotate marks entities spun by the rotate system.
type Rotate struct {
	Speed float32 // radians per second around Y
}

// setupScene uploads the models and spawns them in a row in front of a
// camera, with one light above the camera.
func setupScene(app *rad.App, cfg *config.SceneConfig, builders []*mesh.Builder) error {
	mat := material.Default{
		ShadingEnabled: cfg.Shading,
		BaseColour:     scene.Colour{R: cfg.BaseColour[0], G: cfg.BaseColour[1], B: cfg.BaseColour[2]},
	}

	offset := -modelSpacing * float32(len(builders)-1) / 2
	for i, b := range builders {
		m, err := app.RegisterMesh(b)
		if err != nil {
			return err
		}
		x := offset + modelSpacing*float32(i)
		app.Spawn(
			ecs.C(m),
			ecs.C(scene.At(mgl32.Vec3{x, 0, 0})),
			ecs.C(mat),
			ecs.C(Rotate{Speed: cfg.RotationSpeed}),
		)
	}

	cam := scene.CameraBundle{
		Transform: scene.At(mgl32.Vec3{0, 0, cfg.CameraZ}),
		Camera:    scene.NewCamera(),
	}
	c := cfg.ClearColour
	cam.Camera.Params.ClearColour = &scene.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	app.Spawn(cam)

	app.Spawn(scene.LightBundle{
		Transform: scene.At(mgl32.Vec3{0, 2, cfg.CameraZ}),
		Light: scene.Light{
			Colour: scene.Colour{R: cfg.LightColour[0], G: cfg.LightColour[1], B: cfg.LightColour[2]},
		},
	})

	app.AddSystems(schedule.Update, rotate)
	return nil
}

// rotate spins every Rotate entity by its speed scaled by the frame delta.
func rotate(w *ecs.World) {
	dt := ecs.MustResource[rad.Time](w).DeltaSeconds()
	ecs.Each2(w, func(_ ecs.Entity, t *scene.Transform, r *Rotate) {
		t.Rotation[1] += r.Speed * dt
	})
}
