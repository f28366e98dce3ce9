package lights

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

// QuadLight is a one-sided area light over a parallelogram. The matching
// geometry (two emissive triangles) is added to the scene separately so
// BSDF-sampled paths can hit it; this type provides the sampling side of
// the MIS pair.
type QuadLight struct {
	Corner core.Vec3
	EdgeU  core.Vec3
	EdgeV  core.Vec3

	normal   core.Vec3
	area     float64
	emission spectrum.Reflectance
	scale    float64
}

// NewQuadLight creates an area light from a corner, two edge vectors, a
// linear RGB emission color and an intensity scale
func NewQuadLight(corner, edgeU, edgeV core.Vec3, color core.Vec3, scale float64) *QuadLight {
	cross := edgeU.Cross(edgeV)
	return &QuadLight{
		Corner:   corner,
		EdgeU:    edgeU,
		EdgeV:    edgeV,
		normal:   cross.Normalize(),
		area:     cross.Length(),
		emission: spectrum.UpsampleRGB(color),
		scale:    scale,
	}
}

// Sample draws a uniform point on the quad and converts the area density to
// solid angle at the receiving point
func (ql *QuadLight) Sample(point core.Vec3, sample core.Vec2, lambdas core.Float4) (core.LightSample, bool) {
	onLight := ql.Corner.
		Add(ql.EdgeU.Multiply(sample.X)).
		Add(ql.EdgeV.Multiply(sample.Y))

	toLight := onLight.Subtract(point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return core.LightSample{}, false
	}
	dist := math.Sqrt(distSq)
	dir := toLight.Multiply(1.0 / dist)

	// The light emits from its front face only.
	cosLight := dir.Negate().Dot(ql.normal)
	if cosLight <= 0 {
		return core.LightSample{}, false
	}

	// p_area = 1/area; p_solidangle = dist² / (cosLight * area).
	pdf := distSq / (cosLight * ql.area)

	return core.LightSample{
		Direction: dir,
		Distance:  dist,
		Emission:  ql.emission.EvaluateHero(lambdas).Scale(ql.scale),
		PDF:       pdf,
	}, true
}

// PDF returns the solid-angle density of Sample producing dir from point,
// or 0 when the ray misses the quad
func (ql *QuadLight) PDF(point core.Vec3, dir core.Vec3) float64 {
	denom := dir.Dot(ql.normal)
	if denom >= 0 {
		// Pointing at the back face or parallel.
		return 0
	}

	t := ql.normal.Dot(ql.Corner.Subtract(point)) / denom
	if t <= 0 {
		return 0
	}

	// Express the plane hit in edge coordinates.
	hit := point.Add(dir.Multiply(t)).Subtract(ql.Corner)
	uu := ql.EdgeU.Dot(ql.EdgeU)
	uv := ql.EdgeU.Dot(ql.EdgeV)
	vv := ql.EdgeV.Dot(ql.EdgeV)
	hu := hit.Dot(ql.EdgeU)
	hv := hit.Dot(ql.EdgeV)

	det := uu*vv - uv*uv
	if det == 0 {
		return 0
	}
	u := (hu*vv - hv*uv) / det
	v := (hv*uu - hu*uv) / det
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0
	}

	cosLight := -denom
	distSq := t * t * dir.LengthSquared()
	return distSq / (cosLight * ql.area)
}

// IsDelta reports that the light has finite extent
func (ql *QuadLight) IsDelta() bool {
	return false
}
