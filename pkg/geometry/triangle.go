// Package geometry provides the scene primitives the hierarchy is built
// over, plus the camera that generates primary rays.
package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Triangle is a single triangle with optional per-vertex shading normals.
// Triangles are immutable once built; bounds and the geometric normal are
// precomputed.
type Triangle struct {
	V0, V1, V2 core.Vec3
	N0, N1, N2 core.Vec3 // Shading normals; geometric normal when not provided
	Material   core.Material

	normal core.Vec3
	bounds core.AABB
}

// NewTriangle creates a triangle with flat shading
func NewTriangle(v0, v1, v2 core.Vec3, mat core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.N0, t.N1, t.N2 = t.normal, t.normal, t.normal
	t.bounds = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithNormals creates a triangle with per-vertex shading normals
func NewTriangleWithNormals(v0, v1, v2, n0, n1, n2 core.Vec3, mat core.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	t.N0 = n0.Normalize()
	t.N1 = n1.Normalize()
	t.N2 = n2.Normalize()
	return t
}

// BoundingBox returns the precomputed bounds
func (t *Triangle) BoundingBox() core.AABB {
	return t.bounds
}

// Intersect tests the ray against the triangle using the Moller-Trumbore
// algorithm, accepting hits within [tMin, tMax)
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	var hit core.HitRecord

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Rays parallel to the triangle plane cannot hit.
	if math.Abs(det) < 1e-12 {
		return hit, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := s.Dot(h) * invDet
	if u < 0 || u > 1 {
		return hit, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return hit, false
	}

	tParam := edge2.Dot(q) * invDet
	if tParam < tMin || tParam >= tMax {
		return hit, false
	}

	hit.T = tParam
	hit.Point = ray.At(tParam)
	hit.UV = core.NewVec2(u, v)
	hit.Material = t.Material

	// Interpolate shading normals with barycentric weights.
	w := 1.0 - u - v
	shading := t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	hit.SetFaceNormal(ray, shading)

	return hit, true
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return 0.5 * edge1.Cross(edge2).Length()
}
