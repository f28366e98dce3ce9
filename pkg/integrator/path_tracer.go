// Package integrator estimates spectral radiance along camera rays with
// unidirectional path tracing. Light transport is evaluated at four hero
// wavelengths per path; direct lighting combines light sampling and BSDF
// sampling with the power heuristic.
package integrator

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/sampler"
)

// Scene is the intersection and lighting capability set the integrator
// consumes
type Scene interface {
	// Intersect finds the closest hit along the ray, if any.
	Intersect(ray core.Ray) (core.HitRecord, bool)

	// Occluded reports whether anything blocks the ray within its
	// [TMin, TMax) interval.
	Occluded(ray core.Ray) bool

	// LightSampler returns the scene's light selection strategy.
	LightSampler() *lights.UniformSampler
}

// Config controls path depth and termination
type Config struct {
	MaxDepth      int     // Maximum number of bounces before forced termination
	RRMinBounce   int     // First bounce at which Russian roulette may terminate
	RRSurvivalMin float64 // Lower clamp on the roulette survival probability
	RRSurvivalMax float64 // Upper clamp on the roulette survival probability
	ShadowEpsilon float64 // Offset applied to shadow ray endpoints

	// Environment supplies radiance for rays that escape the scene. Escaped
	// rays contribute nothing when it is nil.
	Environment func(dir core.Vec3, lambdas core.Float4) core.Float4
}

// DefaultConfig returns the integration defaults
func DefaultConfig() Config {
	return Config{
		MaxDepth:      10,
		RRMinBounce:   3,
		RRSurvivalMin: 0.05,
		RRSurvivalMax: 0.95,
		ShadowEpsilon: 1e-3,
	}
}

// PathTracer is the spectral path tracing integrator. It is stateless and
// safe for concurrent use from multiple render workers.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a path tracer with the given configuration
func NewPathTracer(config Config) *PathTracer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	return &PathTracer{config: config}
}

// Li estimates the spectral radiance arriving along ray at the hero
// wavelengths in lambdas. Li repositions the sampler at each bounce's
// dimension block, so the caller's camera dimensions are unaffected.
func (pt *PathTracer) Li(ray core.Ray, scene Scene, s *sampler.PixelSampler, lambdas core.Float4) core.Float4 {
	var radiance core.Float4
	throughput := core.SplatFloat4(1.0)

	lightSampler := scene.LightSampler()

	// A specular bounce (or the camera) preceding the current vertex means
	// emitted light was not reachable by next event estimation, so it is
	// counted at full weight here.
	prevSpecular := true
	prevPDF := 0.0
	var prevPoint core.Vec3

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		s.StartBounce(bounce)

		hit, found := scene.Intersect(ray)
		if !found {
			// The environment is never light sampled, so an escaped ray
			// carries it at full weight.
			if pt.config.Environment != nil {
				env := pt.config.Environment(ray.Direction, lambdas)
				radiance = radiance.Add(throughput.Mul(env))
			}
			break
		}

		wo := ray.Direction.Negate().Normalize()

		// Emitted light at the hit point.
		if emitter, ok := hit.Material.(core.Emitter); ok {
			emitted := emitter.Emit(&hit, wo, lambdas)
			if prevSpecular {
				radiance = radiance.Add(throughput.Mul(emitted))
			} else {
				// Weight against the light sampler's density for
				// reaching the same point.
				lightPDF := lightSampler.DirectionPDF(prevPoint, ray.Direction)
				w := core.PowerHeuristic(1, prevPDF, 1, lightPDF)
				radiance = radiance.Add(throughput.Mul(emitted).Scale(w))
			}
		}

		if hit.Material == nil {
			break
		}

		// Next event estimation.
		direct := pt.sampleDirect(scene, lightSampler, &hit, wo, s, lambdas)
		radiance = radiance.Add(throughput.Mul(direct))

		// Continue the path by sampling the BSDF.
		bu, bv := sample2DAt(s, sampler.DimBSDFU)
		bsdf, ok := hit.Material.Sample(wo, hit.Normal, core.Vec2{X: bu, Y: bv}, lambdas)
		if !ok || bsdf.PDF <= 0 {
			break
		}

		cosTheta := math.Abs(bsdf.Direction.Dot(hit.Normal))
		if bsdf.Specular {
			// Delta distributions fold the cosine and density into the
			// weight.
			throughput = throughput.Mul(bsdf.Weight)
		} else {
			throughput = throughput.Mul(bsdf.Weight).Scale(cosTheta / bsdf.PDF)
		}
		if !throughput.IsFinite() || throughput.MaxElem() <= 0 {
			break
		}

		prevSpecular = bsdf.Specular
		prevPDF = bsdf.PDF
		prevPoint = hit.Point

		ray = core.NewRay(hit.Point, bsdf.Direction)

		// Russian roulette on throughput after the first few bounces.
		if bounce >= pt.config.RRMinBounce {
			survival := throughput.MaxElem()
			if survival < pt.config.RRSurvivalMin {
				survival = pt.config.RRSurvivalMin
			} else if survival > pt.config.RRSurvivalMax {
				survival = pt.config.RRSurvivalMax
			}
			if sample1DAt(s, sampler.DimRoulette) >= survival {
				break
			}
			throughput = throughput.Scale(1.0 / survival)
		}
	}

	// A non-finite estimate poisons the whole pixel average, so it is
	// dropped rather than propagated.
	if !radiance.IsFinite() {
		return core.Float4{}
	}
	return radiance.MaxWith(core.Float4{})
}

// sampleDirect estimates direct lighting at the hit point by sampling one
// light uniformly and weighting with the power heuristic
func (pt *PathTracer) sampleDirect(scene Scene, lightSampler *lights.UniformSampler, hit *core.HitRecord, wo core.Vec3, s *sampler.PixelSampler, lambdas core.Float4) core.Float4 {
	light, selectPDF := lightSampler.Pick(sample1DAt(s, sampler.DimLightSelect))
	if light == nil {
		return core.Float4{}
	}

	lu, lv := sample2DAt(s, sampler.DimLightU)
	ls, ok := light.Sample(hit.Point, core.Vec2{X: lu, Y: lv}, lambdas)
	if !ok || ls.PDF <= 0 {
		return core.Float4{}
	}

	f := hit.Material.Evaluate(wo, ls.Direction, hit.Normal, lambdas)
	if f.MaxElem() <= 0 {
		return core.Float4{}
	}
	cosTheta := ls.Direction.Dot(hit.Normal)
	if cosTheta <= 0 {
		return core.Float4{}
	}

	shadow := core.NewRayInterval(hit.Point, ls.Direction,
		pt.config.ShadowEpsilon, ls.Distance-pt.config.ShadowEpsilon)
	if scene.Occluded(shadow) {
		return core.Float4{}
	}

	pdf := ls.PDF * selectPDF
	contribution := f.Mul(ls.Emission).Scale(cosTheta / pdf)

	if light.IsDelta() {
		// BSDF sampling cannot hit a delta light, so light sampling is
		// the only strategy and carries full weight.
		return contribution
	}

	bsdfPDF, isDelta := hit.Material.PDF(wo, ls.Direction, hit.Normal)
	if isDelta {
		// A delta BSDF never produces this direction on its own.
		return contribution
	}
	w := core.PowerHeuristic(1, pdf, 1, bsdfPDF)
	return contribution.Scale(w)
}

// sample1DAt reads one value from a fixed offset in the current bounce block
func sample1DAt(s *sampler.PixelSampler, offset int) float64 {
	s.Seek(offset)
	return s.Get1D()
}

// sample2DAt reads a pair from a fixed offset in the current bounce block
func sample2DAt(s *sampler.PixelSampler, offset int) (float64, float64) {
	s.Seek(offset)
	return s.Get2D()
}
