package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestTriangle_Intersect(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		nil,
	)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{
			name:      "Hit through centroid",
			ray:       core.NewRay(core.NewVec3(0, -1.0/3.0, 5), core.NewVec3(0, 0, -1)),
			expectHit: true,
			expectedT: 5,
		},
		{
			name:      "Hit from behind",
			ray:       core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)),
			expectHit: true,
			expectedT: 3,
		},
		{
			name:      "Miss outside the edge",
			ray:       core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "Miss above the apex",
			ray:       core.NewRay(core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "Parallel to the plane",
			ray:       core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0)),
			expectHit: false,
		},
		{
			name:      "Triangle behind the origin",
			ray:       core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, found := tri.Intersect(tt.ray, tt.ray.TMin, tt.ray.TMax)
			if found != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, found)
			}
			if found && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t = %v, got %v", tt.expectedT, hit.T)
			}
		})
	}
}

func TestTriangle_FaceNormal(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		nil,
	)

	// The returned normal always faces the ray origin.
	front, _ := tri.Intersect(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 1e-4, 100)
	if front.Normal.Z <= 0 || !front.FrontFace {
		t.Errorf("Expected front-facing normal toward +Z, got %v (front=%v)", front.Normal, front.FrontFace)
	}

	back, _ := tri.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 1e-4, 100)
	if back.Normal.Z >= 0 || back.FrontFace {
		t.Errorf("Expected back-facing normal toward -Z, got %v (front=%v)", back.Normal, back.FrontFace)
	}
}

func TestTriangle_InterpolatedNormals(t *testing.T) {
	// Shading normals tilted outward at each vertex; a centroid hit should
	// see their normalized average.
	n0 := core.NewVec3(-0.3, 0, 1).Normalize()
	n1 := core.NewVec3(0.3, 0, 1).Normalize()
	n2 := core.NewVec3(0, 0.3, 1).Normalize()
	tri := NewTriangleWithNormals(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		n0, n1, n2,
		nil,
	)

	hit, found := tri.Intersect(core.NewRay(core.NewVec3(0, -1.0/3.0, 5), core.NewVec3(0, 0, -1)), 1e-4, 100)
	if !found {
		t.Fatal("Expected a hit")
	}

	expected := n0.Add(n1).Add(n2).Normalize()
	if hit.Normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected interpolated normal %v, got %v", expected, hit.Normal)
	}
}

func TestTriangle_BoundsAndArea(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 3, 0),
		nil,
	)

	bounds := tri.BoundingBox()
	if bounds.Min != core.NewVec3(0, 0, 0) || bounds.Max != core.NewVec3(2, 3, 0) {
		t.Errorf("Unexpected bounds: %+v", bounds)
	}
	if math.Abs(tri.Area()-3) > 1e-12 {
		t.Errorf("Expected area 3, got %v", tri.Area())
	}
}

func TestNewSphereMesh(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	const radius = 2.0
	tris := NewSphereMesh(center, radius, 8, 16, nil)

	// 2 triangles per quad, minus one per pole quad.
	expected := 8*16*2 - 2*16
	if len(tris) != expected {
		t.Errorf("Expected %d triangles, got %d", expected, len(tris))
	}

	for i, tri := range tris {
		for _, v := range []core.Vec3{tri.V0, tri.V1, tri.V2} {
			d := v.Subtract(center).Length()
			if math.Abs(d-radius) > 1e-9 {
				t.Fatalf("Triangle %d vertex %v at distance %v from center", i, v, d)
			}
		}
		if !tri.BoundingBox().IsValid() {
			t.Fatalf("Triangle %d has invalid bounds", i)
		}
	}

	// A ray at the sphere must hit near the analytic distance.
	ray := core.NewRay(center.Add(core.NewVec3(0, 0, 10)), core.NewVec3(0, 0, -1))
	closest := math.Inf(1)
	for _, tri := range tris {
		if hit, ok := tri.Intersect(ray, 1e-4, closest); ok {
			closest = hit.T
		}
	}
	if math.Abs(closest-8) > 0.1 {
		t.Errorf("Expected hit near t = 8, got %v", closest)
	}
}

func TestNewQuadMesh(t *testing.T) {
	tris := NewQuadMesh(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 1, 0),
		nil,
	)
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(tris))
	}

	total := tris[0].Area() + tris[1].Area()
	if math.Abs(total-2) > 1e-12 {
		t.Errorf("Expected total area 2, got %v", total)
	}

	// Every interior point of the quad is covered by exactly one triangle.
	for _, p := range []core.Vec2{{X: 0.2, Y: 0.3}, {X: 1.5, Y: 0.9}, {X: 1.0, Y: 0.4}} {
		ray := core.NewRay(core.NewVec3(p.X, p.Y, 5), core.NewVec3(0, 0, -1))
		hits := 0
		for _, tri := range tris {
			if _, ok := tri.Intersect(ray, 1e-4, 100); ok {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("Point %v: expected 1 hit, got %d", p, hits)
		}
	}
}
