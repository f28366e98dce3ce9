package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Target point
	Up            core.Vec3 // World up hint
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the focal plane; 0 uses |LookAt - Center|
	ShutterOpen   float64   // Shutter interval for motion-blur time sampling
	ShutterClose  float64
}

// Camera generates primary rays from jittered image-plane, lens and time
// parameters. It is immutable after construction and safe for concurrent
// use.
type Camera struct {
	cameraToWorld core.Matrix4x4
	origin        core.Vec3
	halfWidth     float64
	halfHeight    float64
	lensRadius    float64
	focusDist     float64
	shutterOpen   float64
	shutterSpan   float64
}

// NewCamera builds a camera from its configuration
func NewCamera(cfg CameraConfig) *Camera {
	if cfg.Up.LengthSquared() == 0 {
		cfg.Up = core.NewVec3(0, 1, 0)
	}
	focusDist := cfg.FocusDistance
	if focusDist <= 0 {
		focusDist = cfg.LookAt.Subtract(cfg.Center).Length()
	}
	if focusDist <= 0 {
		focusDist = 1
	}

	theta := cfg.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := cfg.AspectRatio * halfHeight

	return &Camera{
		cameraToWorld: core.LookAtMatrix(cfg.Center, cfg.LookAt, cfg.Up),
		origin:        cfg.Center,
		halfWidth:     halfWidth,
		halfHeight:    halfHeight,
		lensRadius:    cfg.Aperture / 2,
		focusDist:     focusDist,
		shutterOpen:   cfg.ShutterOpen,
		shutterSpan:   cfg.ShutterClose - cfg.ShutterOpen,
	}
}

// GenerateRay maps screen coordinates (s, t) in [0,1]² plus lens and time
// samples to a world-space ray. s runs left to right, t bottom to top.
func (c *Camera) GenerateRay(s, t float64, lensSample core.Vec2, timeSample float64) core.Ray {
	// Point on the focal plane in camera space; camera looks down -Z.
	focal := core.NewVec3(
		(2*s-1)*c.halfWidth*c.focusDist,
		(2*t-1)*c.halfHeight*c.focusDist,
		-c.focusDist,
	)

	// Lens offset in camera space for depth of field.
	lensOrigin := core.NewVec3(0, 0, 0)
	if c.lensRadius > 0 {
		disk := core.SamplePointInUnitDisk(lensSample)
		lensOrigin = core.NewVec3(disk.X*c.lensRadius, disk.Y*c.lensRadius, 0)
	}

	origin := c.cameraToWorld.TransformPoint(lensOrigin)
	direction := c.cameraToWorld.TransformVector(focal.Subtract(lensOrigin)).Normalize()

	ray := core.NewRay(origin, direction)
	ray.Time = c.shutterOpen + timeSample*c.shutterSpan
	return ray
}
