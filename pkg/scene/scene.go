// Package scene assembles primitives, lights and a camera into a renderable
// unit backed by a single arena allocation and a bounding volume hierarchy.
package scene

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/arena"
	"github.com/lumen-render/lumen/pkg/bvh"
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/logging"
)

var log = logging.New("scene")

// Scene holds everything needed to trace rays: the acceleration structure,
// the light list and the camera. Once Build has run the scene is immutable
// and safe for concurrent traversal.
type Scene struct {
	Camera *geometry.Camera

	arena        *arena.Arena
	prims        []bvh.Primitive
	lights       []core.Light
	lightSampler *lights.UniformSampler
	tree         *bvh.BVH
	built        bool
}

// New creates an empty scene with its own arena
func New(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera: camera,
		arena:  arena.New(),
	}
}

// AddPrimitive appends a primitive to the scene
func (s *Scene) AddPrimitive(prim bvh.Primitive) {
	s.prims = append(s.prims, prim)
	s.built = false
}

// AddPrimitives appends a batch of primitives, typically a tessellated mesh
func (s *Scene) AddPrimitives(prims []bvh.Primitive) {
	s.prims = append(s.prims, prims...)
	s.built = false
}

// AddTriangles appends a triangle mesh to the scene
func (s *Scene) AddTriangles(tris []*geometry.Triangle) {
	for _, tri := range tris {
		s.prims = append(s.prims, tri)
	}
	s.built = false
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light core.Light) {
	s.lights = append(s.lights, light)
}

// Build constructs the acceleration structure over the current primitive
// list. It must be called before tracing and after the last primitive is
// added.
func (s *Scene) Build() error {
	if len(s.prims) == 0 {
		return fmt.Errorf("scene: no primitives to build over")
	}

	s.arena.Reset()
	tree, err := bvh.Build(s.arena, s.prims, bvh.DefaultConfig())
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	s.tree = tree
	s.lightSampler = lights.NewUniformSampler(s.lights)
	s.built = true
	log.Debugf("built scene: %d primitives, %d lights, %d bvh nodes, arena %d bytes",
		len(s.prims), len(s.lights), tree.NodeCount(), s.arena.TotalAllocated())
	return nil
}

// Intersect finds the closest hit along the ray
func (s *Scene) Intersect(ray core.Ray) (core.HitRecord, bool) {
	if !s.built {
		return core.HitRecord{}, false
	}
	return s.tree.Intersect(ray)
}

// Occluded reports whether any primitive blocks the ray
func (s *Scene) Occluded(ray core.Ray) bool {
	if !s.built {
		return false
	}
	return s.tree.IntersectP(ray)
}

// Lights returns the scene's light list
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// LightSampler returns the uniform light selection strategy. Valid after
// Build.
func (s *Scene) LightSampler() *lights.UniformSampler {
	if s.lightSampler == nil {
		s.lightSampler = lights.NewUniformSampler(s.lights)
	}
	return s.lightSampler
}

// Bounds returns the world bounds of the built scene
func (s *Scene) Bounds() core.AABB {
	if !s.built {
		return core.EmptyAABB()
	}
	return s.tree.Bounds()
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.prims)
}

// Validate checks the acceleration structure's internal invariants
func (s *Scene) Validate() error {
	if !s.built {
		return fmt.Errorf("scene: not built")
	}
	return s.tree.Validate()
}
