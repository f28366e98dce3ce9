package scene

import (
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/material"
)

func TestScene_BuildAndIntersect(t *testing.T) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        45,
		AspectRatio: 1,
	})
	s := New(camera)

	white := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	s.AddTriangles(geometry.NewSphereMesh(core.NewVec3(0, 0, 0), 1, 8, 16, white))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 10))

	if err := s.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	hit, found := s.Intersect(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if !found {
		t.Fatal("Expected a hit on the sphere")
	}
	if hit.T < 3.9 || hit.T > 4.1 {
		t.Errorf("Expected hit near t = 4, got %v", hit.T)
	}
	if hit.Material == nil {
		t.Error("Expected hit material to be set")
	}

	if _, found := s.Intersect(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0))); found {
		t.Error("Expected no hit pointing away")
	}

	// Occlusion between opposite sides of the sphere, none off to the side.
	blocked := core.NewRayInterval(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 1e-3, 10)
	if !s.Occluded(blocked) {
		t.Error("Expected occlusion through the sphere")
	}
	clear := core.NewRayInterval(core.NewVec3(0, 3, 5), core.NewVec3(0, 0, -1), 1e-3, 10)
	if s.Occluded(clear) {
		t.Error("Expected no occlusion above the sphere")
	}

	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}
	if s.LightSampler().Count() != 1 {
		t.Errorf("Expected light sampler over 1 light, got %d", s.LightSampler().Count())
	}
}

func TestScene_BuildEmptyFails(t *testing.T) {
	s := New(nil)
	if err := s.Build(); err == nil {
		t.Error("Expected error building an empty scene")
	}
}

func TestScene_RebuildAfterAdding(t *testing.T) {
	s := New(nil)
	white := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white))
	if err := s.Build(); err != nil {
		t.Fatalf("First build failed: %v", err)
	}
	first := s.PrimitiveCount()

	// Intersect misses a region the second mesh will cover.
	probe := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(0, -1, 0))
	if _, found := s.Intersect(probe); found {
		t.Fatal("Unexpected hit before adding the second mesh")
	}

	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(4, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white))
	if err := s.Build(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if s.PrimitiveCount() != first+2 {
		t.Errorf("Expected %d primitives, got %d", first+2, s.PrimitiveCount())
	}
	if _, found := s.Intersect(probe); !found {
		t.Error("Expected a hit after the rebuild")
	}
}

func TestNewSphereScene(t *testing.T) {
	sc, err := NewSphereScene(16.0 / 9.0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sc.Camera == nil {
		t.Fatal("Expected a camera")
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	ray := sc.Camera.GenerateRay(0.5, 0.5, core.NewVec2(0.5, 0.5), 0)
	if _, found := sc.Intersect(ray); !found {
		t.Error("Expected the center camera ray to hit the sphere")
	}
}

func TestNewCornellScene(t *testing.T) {
	sc, err := NewCornellScene(1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	if len(sc.Lights()) == 0 {
		t.Error("Expected at least one light")
	}

	// The box is closed: every camera ray hits something.
	for _, st := range [][2]float64{{0.5, 0.5}, {0.1, 0.1}, {0.9, 0.9}, {0.2, 0.8}} {
		ray := sc.Camera.GenerateRay(st[0], st[1], core.NewVec2(0.5, 0.5), 0)
		if _, found := sc.Intersect(ray); !found {
			t.Errorf("Camera ray at (%v, %v) escaped the box", st[0], st[1])
		}
	}

	bounds := sc.Bounds()
	if !bounds.IsValid() {
		t.Errorf("Invalid scene bounds: %+v", bounds)
	}
}
