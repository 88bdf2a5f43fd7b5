package material

import (
	"github.com/Faultbox/rad-engine/pkg/gpu"
	"github.com/Faultbox/rad-engine/pkg/material/shaders"
	"github.com/Faultbox/rad-engine/pkg/scene"
)

// DefaultProgramName is the library name of the built-in program.
const DefaultProgramName = "rad.default"

// Fragment subroutine names in the default program.
const (
	SubroutineShadingEnabled  = "shading_enabled"
	SubroutineShadingDisabled = "shading_disabled"
)

// DefaultSource is the built-in program used by Default.
var DefaultSource = Source{
	Name:     DefaultProgramName,
	Vertex:   shaders.DefaultVertexShader,
	Fragment: shaders.DefaultFragmentShader,
}

// Default is a flat colour material lit by the first light in the scene.
type Default struct {
	ShadingEnabled bool
	BaseColour     scene.Colour
}

// NewDefault returns a shaded material with the given colour.
func NewDefault(base scene.Colour) Default {
	return Default{ShadingEnabled: true, BaseColour: base}
}

// DefaultMaterial returns a shaded white material.
func DefaultMaterial() Default {
	return NewDefault(scene.White)
}

// Program returns DefaultSource.
func (Default) Program() Source {
	return DefaultSource
}

// Uniforms returns the uniform set Draw binds.
func (d Default) Uniforms(t *scene.Transform, cam *scene.BakedCamera) gpu.Uniforms {
	shade := SubroutineShadingDisabled
	if d.ShadingEnabled {
		shade = SubroutineShadingEnabled
	}
	return gpu.Uniforms{
		"model":        ModelMatrix(t),
		"view":         cam.View,
		"projection":   cam.Projection,
		"base_colour":  d.BaseColour.Vec3(),
		"light_colour": cam.FirstLightColour().Vec3(),
		"shade":        gpu.Subroutine{Stage: gpu.StageFragment, Name: shade},
	}
}

// Draw issues one indexed draw of the mesh.
func (d Default) Draw(ctx DrawContext) error {
	p, err := program(ctx, DefaultProgramName)
	if err != nil {
		return err
	}
	return ctx.Frame.Draw(ctx.Mesh, p, d.Uniforms(ctx.Transform, ctx.Camera), gpu.DefaultDrawParameters())
}
