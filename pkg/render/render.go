// Package render draws the ECS world. Each frame it snapshots lights and
// cameras, then draws every mesh entity once per camera through the
// entity's material.
package render

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/Faultbox/rad-engine/internal/logger"
	"github.com/Faultbox/rad-engine/pkg/assets"
	"github.com/Faultbox/rad-engine/pkg/ecs"
	"github.com/Faultbox/rad-engine/pkg/gpu"
	"github.com/Faultbox/rad-engine/pkg/material"
	"github.com/Faultbox/rad-engine/pkg/mesh"
	"github.com/Faultbox/rad-engine/pkg/scene"
)

// BackendName tags renderer log output.
const BackendName = "OpenGL4"

// ClearDepth is the depth every camera target is cleared to.
const ClearDepth = 1.0

// Stats summarises one call to Render.
type Stats struct {
	Cameras int
	Draws   int
	// Skipped counts mesh entities whose handle no longer resolves.
	Skipped int
	// Errors counts failed draw calls.
	Errors int
}

// drawer draws every entity carrying one material type.
type drawer func(w *ecs.World, frame gpu.Frame, cam *scene.BakedCamera, stats *Stats)

// Renderer owns nothing itself; it reads meshes and programs from the
// application's registries.
type Renderer struct {
	device   gpu.Device
	meshes   *assets.Assets[gpu.Buffers]
	programs *material.Library

	drawers    []drawer
	registered map[reflect.Type]bool

	log *zap.Logger
}

// New creates a renderer over the given device and registries.
func New(device gpu.Device, meshes *assets.Assets[gpu.Buffers], programs *material.Library) *Renderer {
	return &Renderer{
		device:     device,
		meshes:     meshes,
		programs:   programs,
		registered: make(map[reflect.Type]bool),
		log:        logger.Named(BackendName),
	}
}

// Device returns the backend the renderer draws to.
func (r *Renderer) Device() gpu.Device {
	return r.device
}

// Programs returns the program library.
func (r *Renderer) Programs() *material.Library {
	return r.programs
}

// Materials returns the number of registered material types.
func (r *Renderer) Materials() int {
	return len(r.drawers)
}

// RegisterMaterial makes entities carrying M drawable. M's program is
// compiled now. Registering the same type twice is a no-op.
func RegisterMaterial[M material.Material](r *Renderer) error {
	typ := reflect.TypeFor[M]()
	if r.registered[typ] {
		return nil
	}

	var zero M
	src := zero.Program()
	if _, err := r.programs.Register(r.device, src); err != nil {
		return fmt.Errorf("register material %s: %w", typ, err)
	}

	r.registered[typ] = true
	r.drawers = append(r.drawers, func(w *ecs.World, frame gpu.Frame, cam *scene.BakedCamera, stats *Stats) {
		ecs.Each3(w, func(e ecs.Entity, m *mesh.Mesh, t *scene.Transform, mat *M) {
			buf, ok := r.meshes.Get(m.Handle)
			if !ok {
				r.log.Debug("skipping entity with absent mesh",
					zap.Uint32("entity", e.ID()),
					zap.Stringer("mesh", m.Handle))
				stats.Skipped++
				return
			}
			err := (*mat).Draw(material.DrawContext{
				Frame:     frame,
				Transform: t,
				Camera:    cam,
				Mesh:      buf,
				Programs:  r.programs,
			})
			if err != nil {
				r.log.Error("draw failed",
					zap.Uint32("entity", e.ID()),
					zap.String("material", typ.String()),
					zap.Error(err))
				stats.Errors++
				return
			}
			stats.Draws++
		})
	})
	return nil
}

// BakeLights snapshots every entity with a Light and a Transform.
func (r *Renderer) BakeLights(w *ecs.World) []scene.BakedLight {
	var lights []scene.BakedLight
	ecs.Each2(w, func(_ ecs.Entity, l *scene.Light, t *scene.Transform) {
		lights = append(lights, scene.BakedLight{Transform: *t, Light: *l})
	})
	return lights
}

// BakeCameras snapshots every camera. Cameras without a Transform view from
// the origin.
func (r *Renderer) BakeCameras(w *ecs.World, width, height int, lights []scene.BakedLight) []scene.BakedCamera {
	var cams []scene.BakedCamera
	ecs.EachOpt(w, func(_ ecs.Entity, c *scene.Camera, t *scene.Transform) {
		cams = append(cams, c.Bake(t, width, height, lights))
	})
	return cams
}

// Render draws one frame for a window of the given size. Draw failures are
// logged and counted; backend failures (frame acquisition, finish, present)
// are logged and returned joined.
func (r *Renderer) Render(w *ecs.World, width, height int) (Stats, error) {
	var stats Stats
	var errs []error

	lights := r.BakeLights(w)
	cams := r.BakeCameras(w, width, height, lights)

	for i := range cams {
		cam := &cams[i]
		if err := r.renderCamera(w, cam, &stats); err != nil {
			r.log.Error("camera pass failed", zap.Int("camera", i), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		stats.Cameras++
	}

	if stats.Cameras > 0 {
		if err := r.device.Present(); err != nil {
			r.log.Error("present failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("present: %w", err))
		}
	}
	return stats, errors.Join(errs...)
}

func (r *Renderer) renderCamera(w *ecs.World, cam *scene.BakedCamera, stats *Stats) error {
	// Only the window target exists, so every camera draws to the main frame.
	frame, err := r.device.BeginFrame()
	if err != nil {
		return fmt.Errorf("begin frame for %s: %w", cam.Target, err)
	}

	if c := cam.Params.ClearColour; c != nil {
		frame.ClearColorAndDepth(c.Array(), ClearDepth)
	} else {
		frame.ClearDepth(ClearDepth)
	}

	for _, draw := range r.drawers {
		draw(w, frame, cam, stats)
	}

	if err := frame.Finish(); err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	return nil
}
