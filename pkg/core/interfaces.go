package core

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection (faces the ray)
	T         float64  // Parameter t along the ray
	UV        Vec2     // Surface parameterization at the hit
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit primitive
	PrimIndex int32    // Index of the hit primitive in the scene's list
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// BSDFSample is the result of sampling a scattering distribution. Weight
// holds the spectral reflectance at the hero wavelengths; the probability
// density is with respect to solid angle.
type BSDFSample struct {
	Direction Vec3   // Sampled outgoing direction (unit length)
	Weight    Float4 // Spectral reflectance at the hero wavelengths
	PDF       float64
	Specular  bool // True for delta distributions (PDF is a discrete weight)
}

// Material is the scattering-distribution capability set consumed by the
// integrator: evaluate, sample and pdf, all spectral at hero wavelengths.
type Material interface {
	// Evaluate returns the BSDF value for a given incoming/outgoing
	// direction pair. wo points away from the surface toward the viewer,
	// wi toward the light.
	Evaluate(wo, wi, normal Vec3, lambdas Float4) Float4

	// Sample draws an outgoing direction from the distribution. Returns
	// false when the material absorbs the ray.
	Sample(wo, normal Vec3, sample Vec2, lambdas Float4) (BSDFSample, bool)

	// PDF returns the solid-angle density of Sample choosing wi, and
	// whether the distribution is a delta function.
	PDF(wo, wi, normal Vec3) (pdf float64, isDelta bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emit(hit *HitRecord, wo Vec3, lambdas Float4) Float4
}

// LightSample is the result of sampling a light from a surface point
type LightSample struct {
	Direction Vec3    // Unit direction from the surface point to the light
	Distance  float64 // Distance to the sampled light point
	Emission  Float4  // Emitted spectral radiance at the hero wavelengths
	PDF       float64 // Solid-angle density of the sample
}

// Light is the light-sampling capability set consumed by the integrator
type Light interface {
	// Sample draws a direction toward the light from a surface point.
	// Returns false when the light cannot illuminate the point.
	Sample(point Vec3, sample Vec2, lambdas Float4) (LightSample, bool)

	// PDF returns the solid-angle density of sampling direction dir from
	// point, used for multiple importance sampling weights. Delta lights
	// return 0: they cannot be hit by a sampled direction.
	PDF(point Vec3, dir Vec3) float64

	// IsDelta reports whether the light is a delta distribution (point
	// or directional), in which case MIS against BSDF sampling does not
	// apply.
	IsDelta() bool
}

// PowerHeuristic computes the MIS weight for a sample drawn from the first
// of two strategies, using the standard beta=2 power heuristic
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	denom := f*f + g*g
	if denom == 0 {
		return 0
	}
	return (f * f) / denom
}
