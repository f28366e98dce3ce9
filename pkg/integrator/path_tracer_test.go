package integrator

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/sampler"
	"github.com/lumen-render/lumen/pkg/scene"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

func sphereScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.NewSphereScene(1)
	if err != nil {
		t.Fatalf("Scene build failed: %v", err)
	}
	return sc
}

// estimate averages Li over n sample indices for one ray
func estimate(pt *PathTracer, sc *scene.Scene, ray core.Ray, pixel uint32, n int) spectrum.XYZ {
	var sum spectrum.XYZ
	for i := 0; i < n; i++ {
		ps := sampler.NewPixelSampler(sampler.Sobol, pixel, uint32(i))
		ps.Get2D()
		ps.Get2D()
		ps.Get1D()
		lambdas := spectrum.SampleHeroWavelengths(ps.Get1D())

		energy := pt.Li(ray, sc, ps, lambdas)
		sum = sum.Add(spectrum.HeroToXYZ(lambdas, energy))
	}
	return sum.Scale(1.0 / float64(n))
}

func TestPathTracer_MissReturnsZero(t *testing.T) {
	sc := sphereScene(t)
	pt := NewPathTracer(DefaultConfig())

	ps := sampler.NewPixelSampler(sampler.Sobol, 0, 0)
	lambdas := spectrum.SampleHeroWavelengths(0.5)

	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 1, 0))
	if got := pt.Li(ray, sc, ps, lambdas); got.MaxElem() != 0 {
		t.Errorf("Expected zero radiance for a miss, got %v", got)
	}
}

func TestPathTracer_EnvironmentLightsMissedRays(t *testing.T) {
	sc := sphereScene(t)
	config := DefaultConfig()
	config.Environment = func(dir core.Vec3, lambdas core.Float4) core.Float4 {
		return core.SplatFloat4(0.25)
	}
	pt := NewPathTracer(config)

	ps := sampler.NewPixelSampler(sampler.Sobol, 0, 0)
	lambdas := spectrum.SampleHeroWavelengths(0.5)

	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 1, 0))
	got := pt.Li(ray, sc, ps, lambdas)
	want := core.SplatFloat4(0.25)
	for i := 0; i < 4; i++ {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Expected escaped ray radiance %v, got %v", want, got)
			break
		}
	}
}

func TestPathTracer_Deterministic(t *testing.T) {
	sc := sphereScene(t)
	pt := NewPathTracer(DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	lambdas := spectrum.SampleHeroWavelengths(0.3)

	a := pt.Li(ray, sc, sampler.NewPixelSampler(sampler.Sobol, 5, 9), lambdas)
	b := pt.Li(ray, sc, sampler.NewPixelSampler(sampler.Sobol, 5, 9), lambdas)
	if a != b {
		t.Errorf("Same sampler inputs produced %v and %v", a, b)
	}
}

func TestPathTracer_LitSideBrighterThanShadowSide(t *testing.T) {
	sc := sphereScene(t)
	pt := NewPathTracer(DefaultConfig())

	// The light sits at (2, 3, 2): the +Z face of the sphere sees it, the
	// -Z face is in shadow.
	front := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	back := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1))

	const n = 128
	frontY := estimate(pt, sc, front, 1, n).Y
	backY := estimate(pt, sc, back, 2, n).Y

	if frontY <= 0 {
		t.Fatal("Expected positive radiance on the lit side")
	}
	if frontY <= backY {
		t.Errorf("Lit side (%v) not brighter than shadow side (%v)", frontY, backY)
	}
}

func TestPathTracer_RadianceFallsWithLightAngle(t *testing.T) {
	sc := sphereScene(t)

	// Direct lighting only: a single bounce isolates the cosine falloff.
	cfg := DefaultConfig()
	cfg.MaxDepth = 1
	pt := NewPathTracer(cfg)

	// Hit points progressively further around the sphere from the light
	// direction. The surface normal at each hit tilts away from the
	// light, so the cosine term must decrease monotonically.
	lightDir := core.NewVec3(2, 3, 2).Normalize()
	angles := []float64{0, 0.5, 1.0}

	// Rotate away from the light around the axis orthogonal to it.
	axis := lightDir.Cross(core.NewVec3(0, 0, 1)).Normalize()
	var previous float64
	for i, angle := range angles {
		// Surface point at the rotated normal.
		normal := rotateAround(lightDir, axis, angle)
		origin := normal.Multiply(3)
		ray := core.NewRay(origin, normal.Negate())

		y := estimate(pt, sc, ray, uint32(10+i), 128).Y
		if i == 0 {
			previous = y
			continue
		}
		if y >= previous {
			t.Errorf("Angle %v: radiance %v did not fall below %v", angle, y, previous)
		}
		previous = y
	}
}

// rotateAround rotates v about a unit axis by angle (Rodrigues)
func rotateAround(v, axis core.Vec3, angle float64) core.Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Multiply(cos).
		Add(axis.Cross(v).Multiply(sin)).
		Add(axis.Multiply(axis.Dot(v) * (1 - cos)))
}

func TestPathTracer_EstimateIsFiniteAndNonNegative(t *testing.T) {
	sc, err := scene.NewCornellScene(1)
	if err != nil {
		t.Fatalf("Scene build failed: %v", err)
	}
	pt := NewPathTracer(DefaultConfig())

	// Rays into the box from the camera side, including ones that hit the
	// mirror sphere and the light itself.
	origins := core.NewVec3(278, 278, -400)
	targets := []core.Vec3{
		{X: 278, Y: 278, Z: 278}, // back wall
		{X: 370, Y: 90, Z: 160},  // mirror sphere
		{X: 278, Y: 554, Z: 279}, // the light
		{X: 50, Y: 278, Z: 278},  // red wall
	}

	for pixel, target := range targets {
		ray := core.NewRay(origins, target.Subtract(origins).Normalize())
		for index := uint32(0); index < 32; index++ {
			ps := sampler.NewPixelSampler(sampler.Halton, uint32(pixel), index)
			ps.Get2D()
			ps.Get2D()
			ps.Get1D()
			lambdas := spectrum.SampleHeroWavelengths(ps.Get1D())

			energy := pt.Li(ray, sc, ps, lambdas)
			if !energy.IsFinite() {
				t.Fatalf("Target %v index %d: non-finite energy %v", target, index, energy)
			}
			if energy.HMin() < 0 {
				t.Fatalf("Target %v index %d: negative energy %v", target, index, energy)
			}
		}
	}
}

func TestPathTracer_DirectHitOnLightReportsEmission(t *testing.T) {
	sc, err := scene.NewCornellScene(1)
	if err != nil {
		t.Fatalf("Scene build failed: %v", err)
	}
	pt := NewPathTracer(DefaultConfig())

	// A camera ray straight at the light quad sees its emission at full
	// weight.
	origin := core.NewVec3(278, 278, 279)
	ray := core.NewRay(origin, core.NewVec3(0, 1, 0))

	ps := sampler.NewPixelSampler(sampler.Sobol, 0, 0)
	ps.Get2D()
	ps.Get2D()
	ps.Get1D()
	lambdas := spectrum.SampleHeroWavelengths(ps.Get1D())

	energy := pt.Li(ray, sc, ps, lambdas)
	if energy.MaxElem() <= 0 {
		t.Error("Expected emission from a direct light hit")
	}
}

func TestPathTracer_MaxDepthZeroUsesDefault(t *testing.T) {
	pt := NewPathTracer(Config{})
	if pt.config.MaxDepth != DefaultConfig().MaxDepth {
		t.Errorf("Expected default max depth, got %d", pt.config.MaxDepth)
	}
}
