package main

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rad-engine/internal/config"
	"github.com/Faultbox/rad-engine/pkg/ecs"
	"github.com/Faultbox/rad-engine/pkg/gpu/gputest"
	"github.com/Faultbox/rad-engine/pkg/platform/platformtest"
	"github.com/Faultbox/rad-engine/pkg/rad"
	"github.com/Faultbox/rad-engine/pkg/scene"
)

func TestDemoScene(t *testing.T) {
	cfg := config.Default()
	loop := platformtest.NewLoop(cfg.WindowOptions())
	loop.Duration = 500 * time.Millisecond
	dev := gputest.New()

	app, err := rad.NewWithPlatform(rad.Platform{
		Window: loop.Window,
		Loop:   loop,
		Device: dev,
	}, rad.WithClock(loop.Clock))
	if err != nil {
		t.Fatalf("NewWithPlatform failed: %v", err)
	}

	builders, err := loadModels(context.Background(), nil)
	if err != nil {
		t.Fatalf("loadModels failed: %v", err)
	}
	if err := setupScene(app, &cfg.Scene, builders); err != nil {
		t.Fatalf("setupScene failed: %v", err)
	}
	if err := app.RunLoop(); err != nil {
		t.Fatalf("RunLoop failed: %v", err)
	}

	frames := len(dev.Frames)
	if frames == 0 {
		t.Fatal("no frames rendered")
	}
	if len(dev.Draws()) != frames {
		t.Errorf("draws = %d, want one per frame (%d)", len(dev.Draws()), frames)
	}
	if got := *dev.Clears()[0].Color; got != cfg.Scene.ClearColour {
		t.Errorf("clear colour = %v, want %v", got, cfg.Scene.ClearColour)
	}
	if got := dev.Draws()[0].Uniforms["light_colour"]; got != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("light_colour = %v", got)
	}

	var rotated bool
	ecs.Each2(app.World(), func(_ ecs.Entity, tr *scene.Transform, _ *Rotate) {
		rotated = tr.Rotation.Y() > 0
	})
	if !rotated {
		t.Error("model should have rotated")
	}
}

func TestLoadModelsFromFiles(t *testing.T) {
	builders, err := loadModels(context.Background(), []string{"assets/cube.obj", "assets/cube.obj"})
	if err != nil {
		t.Fatalf("loadModels failed: %v", err)
	}
	if len(builders) != 2 {
		t.Fatalf("builders = %d, want 2", len(builders))
	}
	if n := builders[0].TriangleCount(); n != 12 {
		t.Errorf("triangles = %d, want 12", n)
	}
}
