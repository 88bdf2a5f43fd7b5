// Package material defines how drawable entities bind shader programs and
// uniforms, and provides the built-in Default material.
package material

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rad-engine/pkg/assets"
	"github.com/Faultbox/rad-engine/pkg/gpu"
	"github.com/Faultbox/rad-engine/pkg/scene"
)

// ErrProgramNotRegistered is returned when a material draws with a program
// that was never added to the library.
var ErrProgramNotRegistered = errors.New("shader program not registered")

// Source is a named pair of GLSL sources.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// DrawContext is everything a material needs for one draw call.
type DrawContext struct {
	Frame gpu.Frame
	// Transform is nil for entities drawn at the origin.
	Transform *scene.Transform
	Camera    *scene.BakedCamera
	Mesh      gpu.Buffers
	Programs  *Library
}

// Material binds a program and its uniforms for a mesh. Implementations are
// ECS components, so they should be plain struct values.
type Material interface {
	// Program returns the shader the material draws with. It must not depend
	// on the receiver's field values; the renderer registers it once per type.
	Program() Source
	Draw(ctx DrawContext) error
}

// ModelMatrix returns the transform's matrix, or identity when t is nil.
func ModelMatrix(t *scene.Transform) mgl32.Mat4 {
	if t == nil {
		return scene.NewTransform().Matrix()
	}
	return t.Matrix()
}

// program resolves the material's program from the library.
func program(ctx DrawContext, name string) (gpu.Program, error) {
	if ctx.Programs == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrProgramNotRegistered)
	}
	p, ok := ctx.Programs.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrProgramNotRegistered)
	}
	return p, nil
}

// Library stores compiled programs by name. Registration is idempotent, so
// the built-in programs can be added whenever a window is created.
type Library struct {
	programs *assets.Assets[gpu.Program]
	byName   map[string]assets.Handle
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		programs: assets.New[gpu.Program](),
		byName:   make(map[string]assets.Handle),
	}
}

// Register compiles src on device unless a program with the same name is
// already present, and returns its handle.
func (l *Library) Register(device gpu.Device, src Source) (assets.Handle, error) {
	if h, ok := l.byName[src.Name]; ok && l.programs.Contains(h) {
		return h, nil
	}
	p, err := device.CreateProgram(src.Vertex, src.Fragment)
	if err != nil {
		return assets.Handle{}, fmt.Errorf("compile program %q: %w", src.Name, err)
	}
	h := l.programs.Add(p)
	l.byName[src.Name] = h
	return h, nil
}

// Lookup returns the program registered under name.
func (l *Library) Lookup(name string) (gpu.Program, bool) {
	h, ok := l.byName[name]
	if !ok {
		return nil, false
	}
	return l.programs.Get(h)
}

// Handle returns the handle of the program registered under name.
func (l *Library) Handle(name string) (assets.Handle, bool) {
	h, ok := l.byName[name]
	return h, ok
}

// Get returns the program named by h.
func (l *Library) Get(h assets.Handle) (gpu.Program, bool) {
	return l.programs.Get(h)
}

// Remove releases the program registered under name.
func (l *Library) Remove(name string) error {
	h, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrProgramNotRegistered)
	}
	delete(l.byName, name)
	p, err := l.programs.Remove(h)
	if err != nil {
		return err
	}
	p.Release()
	return nil
}

// Len returns the number of registry slots.
func (l *Library) Len() int {
	return l.programs.Len()
}

// Count returns the number of registered programs.
func (l *Library) Count() int {
	return l.programs.Count()
}
