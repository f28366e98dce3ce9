package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        60,
		AspectRatio: 1,
	})

	ray := camera.GenerateRay(0.5, 0.5, core.NewVec2(0.5, 0.5), 0)

	if ray.Origin.Subtract(core.NewVec3(0, 0, 5)).Length() > 1e-9 {
		t.Errorf("Expected origin at the eye, got %v", ray.Origin)
	}
	expected := core.NewVec3(0, 0, -1)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VFov:        90,
		AspectRatio: 1,
	})

	// At 90 degrees vertical fov the top edge ray rises 45 degrees.
	top := camera.GenerateRay(0.5, 1, core.NewVec2(0.5, 0.5), 0)
	angle := math.Acos(top.Direction.Dot(core.NewVec3(0, 0, -1)))
	if math.Abs(angle-math.Pi/4) > 1e-9 {
		t.Errorf("Expected 45 degree top ray, got %v degrees", angle*180/math.Pi)
	}

	// s and t increase rightward and upward.
	right := camera.GenerateRay(1, 0.5, core.NewVec2(0.5, 0.5), 0)
	if right.Direction.X <= 0 {
		t.Errorf("Expected +X component for s = 1, got %v", right.Direction)
	}
	up := camera.GenerateRay(0.5, 1, core.NewVec2(0.5, 0.5), 0)
	if up.Direction.Y <= 0 {
		t.Errorf("Expected +Y component for t = 1, got %v", up.Direction)
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0.5,
		FocusDistance: 5,
	})

	// All lens samples of the same screen point converge at the focal
	// plane.
	var focalPoints []core.Vec3
	for _, lens := range []core.Vec2{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.2}, {X: 0.5, Y: 0.95}} {
		ray := camera.GenerateRay(0.3, 0.7, lens, 0)

		// Intersect with the z = 0 focal plane.
		tHit := -ray.Origin.Z / ray.Direction.Z
		focalPoints = append(focalPoints, ray.At(tHit))
	}
	for i := 1; i < len(focalPoints); i++ {
		if focalPoints[i].Subtract(focalPoints[0]).Length() > 1e-9 {
			t.Errorf("Lens samples diverge at the focal plane: %v vs %v",
				focalPoints[0], focalPoints[i])
		}
	}

	// Different lens samples give different origins.
	a := camera.GenerateRay(0.5, 0.5, core.NewVec2(0.1, 0.1), 0)
	b := camera.GenerateRay(0.5, 0.5, core.NewVec2(0.9, 0.9), 0)
	if a.Origin.Subtract(b.Origin).Length() == 0 {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:       core.NewVec3(0, 0, 5),
		LookAt:       core.NewVec3(0, 0, 0),
		VFov:         40,
		AspectRatio:  1,
		ShutterOpen:  0.25,
		ShutterClose: 0.75,
	})

	for _, tt := range []struct{ sample, expected float64 }{
		{0, 0.25},
		{0.5, 0.5},
		{1, 0.75},
	} {
		ray := camera.GenerateRay(0.5, 0.5, core.NewVec2(0.5, 0.5), tt.sample)
		if math.Abs(ray.Time-tt.expected) > 1e-12 {
			t.Errorf("Sample %v: expected time %v, got %v", tt.sample, tt.expected, ray.Time)
		}
	}
}
