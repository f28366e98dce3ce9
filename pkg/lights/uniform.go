package lights

import "github.com/lumen-render/lumen/pkg/core"

// UniformSampler selects among a scene's lights with equal probability.
type UniformSampler struct {
	lights []core.Light
}

// NewUniformSampler creates a light selector over the given lights
func NewUniformSampler(lights []core.Light) *UniformSampler {
	return &UniformSampler{lights: lights}
}

// Count returns the number of lights
func (us *UniformSampler) Count() int {
	return len(us.lights)
}

// Pick maps a 1D sample to a light and its selection probability
func (us *UniformSampler) Pick(u float64) (core.Light, float64) {
	n := len(us.lights)
	if n == 0 {
		return nil, 0
	}
	idx := int(u * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return us.lights[idx], 1.0 / float64(n)
}

// PDF returns the probability of a particular light being selected
func (us *UniformSampler) PDF() float64 {
	if len(us.lights) == 0 {
		return 0
	}
	return 1.0 / float64(len(us.lights))
}

// DirectionPDF returns the combined solid-angle density of the sampler
// producing direction dir from point, marginalized over light selection.
// Used to weight emission found by BSDF sampling.
func (us *UniformSampler) DirectionPDF(point, dir core.Vec3) float64 {
	n := len(us.lights)
	if n == 0 {
		return 0
	}
	total := 0.0
	for _, l := range us.lights {
		total += l.PDF(point, dir)
	}
	return total / float64(n)
}
