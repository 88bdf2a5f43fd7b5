// Package rad is the application driver. It owns the ECS world, the asset
// registries, the schedules and the window, and runs the frame loop:
//
//	Startup once, then per frame Update, render, Draw, and End on close.
//
// Redraws are paced to FrameRate by a software governor.
package rad

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rad-engine/internal/logger"
	"github.com/Faultbox/rad-engine/pkg/assets"
	"github.com/Faultbox/rad-engine/pkg/ecs"
	"github.com/Faultbox/rad-engine/pkg/gpu"
	"github.com/Faultbox/rad-engine/pkg/material"
	"github.com/Faultbox/rad-engine/pkg/mesh"
	"github.com/Faultbox/rad-engine/pkg/platform"
	"github.com/Faultbox/rad-engine/pkg/render"
	"github.com/Faultbox/rad-engine/pkg/schedule"
)

// FrameRate is the target number of redraws per second.
const FrameRate = 60

// FrameInterval is the minimum time between redraws.
const FrameInterval = time.Second / FrameRate

// Driver errors.
var (
	ErrLoopTaken = errors.New("event loop already taken")
	ErrNoBackend = errors.New("no windowing backend registered")
)

// Platform is the set of backends an App runs on.
type Platform struct {
	Window platform.Window
	Loop   platform.EventLoop
	Device gpu.Device
	// Close releases the window after the loop ends. Optional.
	Close func()
}

// Backend opens a window and GPU device.
type Backend func(opts platform.WindowOptions) (Platform, error)

var defaultBackend Backend

// RegisterBackend sets the backend used by New and NewWithWindow. The
// desktop package registers the SDL2/OpenGL backend when imported.
func RegisterBackend(b Backend) {
	defaultBackend = b
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock used for frame pacing and Time.
func WithClock(c platform.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithExitOnEscape controls whether pressing Escape closes the app.
// It is on by default.
func WithExitOnEscape(on bool) Option {
	return func(a *App) { a.exitOnEscape = on }
}

// App is a windowed application.
type App struct {
	world     *ecs.World
	schedules *schedule.Manager
	meshes    *assets.Assets[gpu.Buffers]
	programs  *material.Library
	renderer  *render.Renderer

	window platform.Window
	loop   platform.EventLoop
	device gpu.Device
	close  func()

	clock        platform.Clock
	started      time.Time
	lastFrame    time.Time
	exitOnEscape bool

	log *zap.Logger
}

// New opens a default 480x480 window. It panics if no backend is
// registered or the window cannot be created.
func New() *App {
	return NewWithWindow(platform.DefaultWindowOptions())
}

// NewWithWindow opens a window with opts. It panics on failure.
func NewWithWindow(opts platform.WindowOptions) *App {
	if defaultBackend == nil {
		panic(fmt.Errorf("rad: %w; import github.com/Faultbox/rad-engine/pkg/rad/desktop", ErrNoBackend))
	}
	p, err := defaultBackend(opts)
	if err != nil {
		panic(fmt.Errorf("rad: open window: %w", err))
	}
	app, err := NewWithPlatform(p)
	if err != nil {
		if p.Close != nil {
			p.Close()
		}
		panic(fmt.Errorf("rad: %w", err))
	}
	return app
}

// NewWithPlatform creates an App on the given backends and registers the
// built-in material.
func NewWithPlatform(p Platform, opts ...Option) (*App, error) {
	if p.Window == nil || p.Loop == nil || p.Device == nil {
		return nil, errors.New("platform needs a window, an event loop and a device")
	}

	a := &App{
		world:        ecs.NewWorld(),
		schedules:    schedule.NewManager(),
		meshes:       assets.New[gpu.Buffers](),
		programs:     material.NewLibrary(),
		window:       p.Window,
		loop:         p.Loop,
		device:       p.Device,
		close:        p.Close,
		clock:        platform.SystemClock{},
		exitOnEscape: true,
		log:          logger.Named("rad"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.renderer = render.New(a.device, a.meshes, a.programs)
	if err := render.RegisterMaterial[material.Default](a.renderer); err != nil {
		return nil, fmt.Errorf("register default material: %w", err)
	}

	w, h := a.window.Size()
	ecs.InsertResource(a.world, WindowResource{Width: w, Height: h, Title: a.window.Title()})
	ecs.InsertResource(a.world, Time{})
	ecs.InsertResource(a.world, NewInput())

	return a, nil
}

// World returns the ECS world.
func (a *App) World() *ecs.World {
	return a.world
}

// Spawn creates an entity from bundles.
func (a *App) Spawn(bundles ...ecs.Bundle) ecs.Entity {
	return a.world.Spawn(bundles...)
}

// AddSystems appends systems to phase.
func (a *App) AddSystems(phase schedule.Phase, systems ...ecs.System) {
	a.schedules.AddSystems(phase, systems...)
}

// Schedules returns the phase manager.
func (a *App) Schedules() *schedule.Manager {
	return a.schedules
}

// Meshes returns the mesh registry.
func (a *App) Meshes() *assets.Assets[gpu.Buffers] {
	return a.meshes
}

// Programs returns the shader program library.
func (a *App) Programs() *material.Library {
	return a.programs
}

// RegisterMesh uploads b and returns a component naming it.
func (a *App) RegisterMesh(b *mesh.Builder) (mesh.Mesh, error) {
	buf, err := b.Upload(a.device)
	if err != nil {
		return mesh.Mesh{}, err
	}
	return mesh.Mesh{Handle: a.meshes.Add(buf)}, nil
}

// MustRegisterMesh is like RegisterMesh but panics on error.
func (a *App) MustRegisterMesh(b *mesh.Builder) mesh.Mesh {
	m, err := a.RegisterMesh(b)
	if err != nil {
		panic(fmt.Errorf("rad: register mesh: %w", err))
	}
	return m
}

// RemoveMesh frees the mesh's GPU buffers. Entities still holding m are
// skipped when drawing.
func (a *App) RemoveMesh(m mesh.Mesh) error {
	buf, err := a.meshes.Remove(m.Handle)
	if err != nil {
		return err
	}
	buf.Release()
	return nil
}

// RegisterProgram compiles src into the program library. Registering a
// name twice returns the existing handle.
func (a *App) RegisterProgram(src material.Source) (assets.Handle, error) {
	return a.programs.Register(a.device, src)
}

// RegisterMaterial makes entities carrying M drawable.
func RegisterMaterial[M material.Material](a *App) error {
	return render.RegisterMaterial[M](a.renderer)
}

// Run drives the event loop until the window closes, then exits the
// process. It never returns.
func (a *App) Run() {
	if err := a.RunLoop(); err != nil {
		logger.Fatal("event loop failed", zap.Error(err))
	}
	logger.Sync()
	os.Exit(0)
}

// RunLoop runs Startup and then the event loop until the window closes.
// The loop can only be run once.
func (a *App) RunLoop() error {
	loop := a.loop
	if loop == nil {
		return ErrLoopTaken
	}
	a.loop = nil
	defer func() {
		if a.close != nil {
			a.close()
		}
	}()

	a.started = a.clock.Now()
	a.lastFrame = a.started

	if err := a.schedules.Run(schedule.Startup, a.world); err != nil {
		return err
	}
	a.log.Debug("startup complete", zap.Int("entities", a.world.Len()))

	return loop.Run(a.handle)
}

func (a *App) handle(ev platform.Event, ctl *platform.Control) {
	switch ev.Kind {
	case platform.EventResized:
		res := ecs.MustResource[WindowResource](a.world)
		res.Width, res.Height = ev.Width, ev.Height
		a.device.Resize(ev.Width, ev.Height)

	case platform.EventCloseRequested:
		a.shutdown(ctl)

	case platform.EventRedrawRequested:
		a.frame()

	case platform.EventAboutToWait:
		if !a.schedules.Terminated() && a.clock.Now().Sub(a.lastFrame) > FrameInterval {
			a.window.RequestRedraw()
		}
		ctl.SetPoll()

	case platform.EventKeyboardInput:
		ecs.MustResource[Input](a.world).applyKey(ev.Key, ev.Action)
		if a.exitOnEscape && ev.Key == platform.KeyEscape && ev.Action == platform.Press {
			a.shutdown(ctl)
		}

	case platform.EventMouseMoved:
		in := ecs.MustResource[Input](a.world)
		in.MouseX, in.MouseY = ev.X, ev.Y

	case platform.EventMouseInput:
		ecs.MustResource[Input](a.world).applyButton(ev.Button, ev.Action)
	}
}

// frame runs one Update, render, Draw cycle.
func (a *App) frame() {
	if a.schedules.Terminated() {
		return
	}

	now := a.clock.Now()
	t := ecs.MustResource[Time](a.world)
	if t.Frame > 0 {
		t.Delta = now.Sub(a.lastFrame)
	}
	t.Elapsed = now.Sub(a.started)
	t.Frame++

	if err := a.schedules.Run(schedule.Update, a.world); err != nil {
		a.log.Error("update phase", zap.Error(err))
		return
	}

	win := ecs.MustResource[WindowResource](a.world)
	stats, err := a.renderer.Render(a.world, win.Width, win.Height)
	if err != nil {
		a.log.Error("render", zap.Error(err))
	}
	a.log.Debug("frame rendered",
		zap.Uint64("frame", t.Frame),
		zap.Int("cameras", stats.Cameras),
		zap.Int("draws", stats.Draws),
		zap.Int("skipped", stats.Skipped),
	)

	if err := a.schedules.Run(schedule.Draw, a.world); err != nil {
		a.log.Error("draw phase", zap.Error(err))
	}

	a.lastFrame = now
	ecs.MustResource[Input](a.world).endFrame()
}

// shutdown runs End once and stops the loop.
func (a *App) shutdown(ctl *platform.Control) {
	if !a.schedules.Terminated() {
		if err := a.schedules.Run(schedule.End, a.world); err != nil {
			a.log.Error("end phase", zap.Error(err))
		}
		a.log.Info("application closed")
	}
	ctl.Exit()
}
