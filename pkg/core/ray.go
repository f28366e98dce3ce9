package core

// Ray represents a ray with an origin, direction and a valid parametric
// interval [TMin, TMax). TMax shrinks monotonically as nearer hits are found
// during traversal.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
	TMin      float64
	TMax      float64
}

// Default parametric interval for new rays. TMin offsets ray origins off
// surfaces to avoid self-intersection.
const (
	DefaultTMin = 1e-4
	DefaultTMax = 1e30
)

// NewRay creates a new ray with the default valid interval
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      DefaultTMin,
		TMax:      DefaultTMax,
	}
}

// NewRayInterval creates a ray with an explicit valid interval
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      tMin,
		TMax:      tMax,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// InvDirection returns the reciprocal of each direction component, as used
// by the slab test. Zero components produce infinities, which the slab test
// handles via IEEE semantics.
func (r Ray) InvDirection() Vec3 {
	return Vec3{1.0 / r.Direction.X, 1.0 / r.Direction.Y, 1.0 / r.Direction.Z}
}
