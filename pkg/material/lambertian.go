// Package material implements the scattering distributions the integrator
// dispatches through the core.Material capability set. Reflectance is
// spectral: RGB inputs are upsampled once at construction and evaluated at
// each path's hero wavelengths.
package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

// Lambertian is a perfectly diffuse material
type Lambertian struct {
	albedo spectrum.Reflectance
}

// NewLambertian creates a diffuse material from a linear RGB albedo
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{albedo: spectrum.UpsampleRGB(albedo)}
}

// Evaluate returns the BRDF value albedo/π for directions on the same side
// of the surface
func (l *Lambertian) Evaluate(wo, wi, normal core.Vec3, lambdas core.Float4) core.Float4 {
	if wi.Dot(normal) <= 0 || wo.Dot(normal) <= 0 {
		return core.Float4{}
	}
	return l.albedo.EvaluateHero(lambdas).Scale(1.0 / math.Pi)
}

// Sample draws a cosine-weighted direction in the hemisphere around normal
func (l *Lambertian) Sample(wo, normal core.Vec3, sample core.Vec2, lambdas core.Float4) (core.BSDFSample, bool) {
	wi := core.SampleCosineHemisphere(normal, sample)

	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return core.BSDFSample{}, false
	}

	return core.BSDFSample{
		Direction: wi,
		Weight:    l.albedo.EvaluateHero(lambdas).Scale(1.0 / math.Pi),
		PDF:       cosTheta / math.Pi,
	}, true
}

// PDF returns the cosine-weighted density cos(θ)/π
func (l *Lambertian) PDF(wo, wi, normal core.Vec3) (float64, bool) {
	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return 0, false
	}
	return cosTheta / math.Pi, false
}
