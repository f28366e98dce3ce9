// Package lights implements the light-sampling capability set the
// integrator dispatches through core.Light, plus uniform light selection.
package lights

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

// PointLight is an isotropic delta light
type PointLight struct {
	Position  core.Vec3
	intensity spectrum.Reflectance
	scale     float64
}

// NewPointLight creates a point light from a position, a linear RGB color
// and an intensity scale (radiant intensity per unit solid angle)
func NewPointLight(position core.Vec3, color core.Vec3, scale float64) *PointLight {
	return &PointLight{
		Position:  position,
		intensity: spectrum.UpsampleRGB(color),
		scale:     scale,
	}
}

// Sample returns the single direction toward the light. The sample is a
// delta: PDF is a discrete weight of 1 and emission falls off with the
// squared distance.
func (pl *PointLight) Sample(point core.Vec3, sample core.Vec2, lambdas core.Float4) (core.LightSample, bool) {
	toLight := pl.Position.Subtract(point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return core.LightSample{}, false
	}

	dist := toLight.Length()
	emission := pl.intensity.EvaluateHero(lambdas).Scale(pl.scale / distSq)

	return core.LightSample{
		Direction: toLight.Multiply(1.0 / dist),
		Distance:  dist,
		Emission:  emission,
		PDF:       1,
	}, true
}

// PDF returns 0: a sampled direction never hits a point light
func (pl *PointLight) PDF(point core.Vec3, dir core.Vec3) float64 {
	return 0
}

// IsDelta reports that the light is a delta distribution
func (pl *PointLight) IsDelta() bool {
	return true
}
