package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/material"
)

// NewSphereScene creates a diffuse unit sphere at the origin lit by a single
// point light, useful as a minimal end-to-end setup
func NewSphereScene(aspectRatio float64) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	s := New(camera)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	s.AddTriangles(geometry.NewSphereMesh(core.NewVec3(0, 0, 0), 1.0, 16, 32, white))

	s.AddLight(lights.NewPointLight(
		core.NewVec3(2, 3, 2), core.NewVec3(1, 1, 1), 40))

	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCornellScene creates the standard box: white floor, ceiling and back
// wall, red and green side walls, two spheres and a quad light under the
// ceiling
func NewCornellScene(aspectRatio float64) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	s := New(camera)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.05)

	// Floor, ceiling, back wall.
	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), white))
	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), white))
	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white))

	// Green left wall, red right wall.
	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(0, 555, 0), green))
	s.AddTriangles(geometry.NewQuadMesh(
		core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red))

	// Two spheres standing in for the boxes.
	s.AddTriangles(geometry.NewSphereMesh(core.NewVec3(185, 100, 390), 100, 16, 32, white))
	s.AddTriangles(geometry.NewSphereMesh(core.NewVec3(370, 90, 160), 90, 16, 32, mirror))

	// Quad light under the ceiling, emissive geometry paired with an area
	// light sampler pointing at the same rectangle.
	lightCorner := core.NewVec3(213, 554, 227)
	lightU := core.NewVec3(130, 0, 0)
	lightV := core.NewVec3(0, 0, 105)
	lightColor := core.NewVec3(1, 0.9, 0.7)
	const lightScale = 15.0

	// The emissive quad faces down: edgeU x edgeV must point toward -Y.
	s.AddTriangles(geometry.NewQuadMesh(lightCorner, lightU, lightV,
		material.NewEmissive(lightColor, lightScale)))
	s.AddLight(lights.NewQuadLight(lightCorner, lightU, lightV, lightColor, lightScale))

	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}
