package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

// Metal is a mirror reflector with optional roughness perturbation. The
// distribution is a delta function; Evaluate returns zero and next-event
// estimation skips it.
type Metal struct {
	reflectance spectrum.Reflectance
	fuzz        float64
}

// NewMetal creates a metal from a linear RGB reflectance and a fuzz radius
// in [0,1]
func NewMetal(reflectance core.Vec3, fuzz float64) *Metal {
	return &Metal{
		reflectance: spectrum.UpsampleRGB(reflectance),
		fuzz:        math.Max(0, math.Min(1, fuzz)),
	}
}

// Evaluate returns zero; a delta distribution has no finite BRDF value
func (m *Metal) Evaluate(wo, wi, normal core.Vec3, lambdas core.Float4) core.Float4 {
	return core.Float4{}
}

// Sample reflects wo about the normal, perturbed inside a fuzz sphere
func (m *Metal) Sample(wo, normal core.Vec3, sample core.Vec2, lambdas core.Float4) (core.BSDFSample, bool) {
	reflected := wo.Negate().Reflect(normal)

	if m.fuzz > 0 {
		// Perturb within a sphere of radius fuzz around the mirror
		// direction, reusing the 2D sample for a point on the sphere.
		z := 1 - 2*sample.X
		r := math.Sqrt(math.Max(0, 1-z*z))
		phi := 2 * math.Pi * sample.Y
		offset := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z).Multiply(m.fuzz)
		reflected = reflected.Normalize().Add(offset)
	}

	if reflected.Dot(normal) <= 0 {
		return core.BSDFSample{}, false
	}

	return core.BSDFSample{
		Direction: reflected.Normalize(),
		Weight:    m.reflectance.EvaluateHero(lambdas),
		PDF:       1,
		Specular:  true,
	}, true
}

// PDF is zero for finite directions; the distribution is a delta
func (m *Metal) PDF(wo, wi, normal core.Vec3) (float64, bool) {
	return 0, true
}
