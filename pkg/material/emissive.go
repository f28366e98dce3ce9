package material

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

// Emissive is a light-emitting material. It absorbs incoming rays and
// contributes its emission when a path hits its front face.
type Emissive struct {
	emission spectrum.Reflectance
	scale    float64
}

// NewEmissive creates an emitter from a linear RGB color and an intensity
// scale
func NewEmissive(emission core.Vec3, scale float64) *Emissive {
	return &Emissive{
		emission: spectrum.UpsampleRGB(emission),
		scale:    scale,
	}
}

// Evaluate returns zero; emitters do not scatter
func (e *Emissive) Evaluate(wo, wi, normal core.Vec3, lambdas core.Float4) core.Float4 {
	return core.Float4{}
}

// Sample absorbs the ray
func (e *Emissive) Sample(wo, normal core.Vec3, sample core.Vec2, lambdas core.Float4) (core.BSDFSample, bool) {
	return core.BSDFSample{}, false
}

// PDF is zero; emitters do not scatter
func (e *Emissive) PDF(wo, wi, normal core.Vec3) (float64, bool) {
	return 0, false
}

// Emit returns the emitted spectral radiance toward wo from the front face
func (e *Emissive) Emit(hit *core.HitRecord, wo core.Vec3, lambdas core.Float4) core.Float4 {
	if !hit.FrontFace {
		return core.Float4{}
	}
	return e.emission.EvaluateHero(lambdas).Scale(e.scale)
}
