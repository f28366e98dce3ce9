package spectrum

import "github.com/lumen-render/lumen/pkg/core"

// HeroSamples is the number of wavelengths carried per path; one Float4 lane.
const HeroSamples = 4

// WavelengthPDF is the density of each hero wavelength under the uniform
// stratified selection used by SampleHeroWavelengths.
const WavelengthPDF = 1.0 / (LambdaMax - LambdaMin)

// SampleHeroWavelengths maps a 1D sample in [0,1) to a hero wavelength set:
// the hero wavelength plus three rotations at equal strata offsets. Each
// wavelength is uniformly distributed over the visible range.
func SampleHeroWavelengths(u float64) core.Float4 {
	span := LambdaMax - LambdaMin
	hero := LambdaMin + u*span

	var lambdas core.Float4
	for k := 0; k < HeroSamples; k++ {
		l := hero + span*float64(k)/HeroSamples
		if l >= LambdaMax {
			l -= span
		}
		lambdas[k] = l
	}
	return lambdas
}

// SpectralSample holds radiance (or throughput) at a hero wavelength set
type SpectralSample struct {
	Lambdas core.Float4 // Wavelengths in nanometers, within the visible range
	Energy  core.Float4 // Per-wavelength power
}

// NewSpectralSample creates a sample with all wavelengths at the same energy
func NewSpectralSample(lambdas core.Float4, energy float64) SpectralSample {
	return SpectralSample{Lambdas: lambdas, Energy: core.SplatFloat4(energy)}
}

// Mul scales the energies element-wise by a spectral weight
func (s SpectralSample) Mul(weight core.Float4) SpectralSample {
	return SpectralSample{Lambdas: s.Lambdas, Energy: s.Energy.Mul(weight)}
}

// Scale scales all energies uniformly
func (s SpectralSample) Scale(n float64) SpectralSample {
	return SpectralSample{Lambdas: s.Lambdas, Energy: s.Energy.Scale(n)}
}

// Add accumulates another sample's energy; both must share wavelengths
func (s SpectralSample) Add(other SpectralSample) SpectralSample {
	return SpectralSample{Lambdas: s.Lambdas, Energy: s.Energy.Add(other.Energy)}
}

// ToXYZ integrates the sample against the color matching functions as an
// unbiased Monte Carlo estimate of the spectral integral: each wavelength is
// weighted by 1/(N * pdf) and the result is normalized by the ybar integral.
func (s SpectralSample) ToXYZ() XYZ {
	var out XYZ
	for k := 0; k < HeroSamples; k++ {
		x, y, z := cmfAt(s.Lambdas[k])
		e := s.Energy[k]
		out.X += x * e
		out.Y += y * e
		out.Z += z * e
	}
	w := 1.0 / (HeroSamples * WavelengthPDF * cieYIntegral)
	return out.Scale(w)
}

// HeroToXYZ is the free-function form of SpectralSample.ToXYZ for callers
// that carry wavelengths and energies separately
func HeroToXYZ(lambdas, energy core.Float4) XYZ {
	return SpectralSample{Lambdas: lambdas, Energy: energy}.ToXYZ()
}

// IntegrateXYZ computes the XYZ of an arbitrary spectrum by dense
// integration over the matching-function table. Deterministic; used by the
// upsampler's round-trip contract and its tests.
func IntegrateXYZ(spectrumFn func(lambda float64) float64) XYZ {
	var out XYZ
	for i, row := range cmfTable {
		lambda := LambdaMin + cmfStep*float64(i)
		v := spectrumFn(lambda)
		out.X += row[0] * v * cmfStep
		out.Y += row[1] * v * cmfStep
		out.Z += row[2] * v * cmfStep
	}
	return out.Scale(1.0 / cieYIntegral)
}
