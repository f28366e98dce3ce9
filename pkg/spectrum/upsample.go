package spectrum

import (
	"fmt"
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// RGB -> spectral upsampling. Reflectance spectra are linear combinations of
// three smooth Gaussian basis functions. A correction matrix, computed once
// at init by integrating each basis against the color matching functions,
// makes the round trip RGB -> spectrum -> XYZ -> RGB exact up to the 3x3
// solve. Bright saturated inputs can fit to spectra peaking above unit
// reflectance; those are scaled down uniformly so a surface never reflects
// more light than it receives, trading brightness for the physical bound
// while keeping chromaticity.

// basisPeaks and basisWidths shape the three smooth bases (blue, green, red)
var basisPeaks = [3]float64{465.0, 550.0, 610.0}
var basisWidths = [3]float64{30.0, 38.0, 45.0}

// basisAt evaluates basis function j at lambda
func basisAt(j int, lambda float64) float64 {
	d := (lambda - basisPeaks[j]) / basisWidths[j]
	return math.Exp(-0.5 * d * d)
}

// basisToRGB[i][j] is the linear-RGB response of basis j in channel i
var basisToRGB [3][3]float64

// rgbFromBases inverts basisToRGB; coefficients = rgbFromBases * rgb
var rgbFromBases [3][3]float64

func init() {
	for j := 0; j < 3; j++ {
		xyz := IntegrateXYZ(func(lambda float64) float64 {
			return basisAt(j, lambda)
		})
		rgb := xyz.ToRGB()
		basisToRGB[0][j] = rgb.X
		basisToRGB[1][j] = rgb.Y
		basisToRGB[2][j] = rgb.Z
	}

	inv, err := invert3x3(basisToRGB)
	if err != nil {
		panic(fmt.Sprintf("spectrum: basis matrix is singular: %v", err))
	}
	rgbFromBases = inv
}

// Reflectance is a spectral power distribution upsampled from an RGB triple
type Reflectance struct {
	coeffs [3]float64
}

// UpsampleRGB produces a spectral evaluator whose integrated XYZ matches the
// given linear RGB triple. Fits that exceed unit reflectance anywhere in the
// visible range are rescaled so their peak sits at 1, which preserves the
// chromaticity and makes the round trip return a uniformly dimmed triple.
func UpsampleRGB(rgb core.Vec3) Reflectance {
	var r Reflectance
	for i := 0; i < 3; i++ {
		r.coeffs[i] = rgbFromBases[i][0]*rgb.X +
			rgbFromBases[i][1]*rgb.Y +
			rgbFromBases[i][2]*rgb.Z
	}
	if peak := r.peak(); peak > 1 {
		for i := range r.coeffs {
			r.coeffs[i] /= peak
		}
	}
	return r
}

// peak scans the fitted spectrum for its maximum over the visible range
func (r Reflectance) peak() float64 {
	max := 0.0
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		if v := r.Evaluate(lambda); v > max {
			max = v
		}
	}
	return max
}

// Evaluate returns the spectrum's value at lambda. May be slightly negative
// for saturated input colors; shading call sites use EvaluateHero, which
// clamps.
func (r Reflectance) Evaluate(lambda float64) float64 {
	return r.coeffs[0]*basisAt(0, lambda) +
		r.coeffs[1]*basisAt(1, lambda) +
		r.coeffs[2]*basisAt(2, lambda)
}

// EvaluateHero evaluates the spectrum at a hero wavelength set, clamped to
// physical reflectance in [0, 1]
func (r Reflectance) EvaluateHero(lambdas core.Float4) core.Float4 {
	var out core.Float4
	for k := 0; k < HeroSamples; k++ {
		out[k] = math.Min(1, math.Max(0, r.Evaluate(lambdas[k])))
	}
	return out
}

// ToXYZ integrates the reflectance densely against the matching functions
func (r Reflectance) ToXYZ() XYZ {
	return IntegrateXYZ(r.Evaluate)
}

// invert3x3 returns the inverse of a 3x3 matrix
func invert3x3(m [3][3]float64) ([3][3]float64, error) {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 || math.IsNaN(det) {
		return [3][3]float64{}, fmt.Errorf("determinant %v", det)
	}
	inv := 1.0 / det

	return [3][3]float64{
		{(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv},
		{(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv},
		{(d*h - e*g) * inv, (b*g - a*h) * inv, (a*e - b*d) * inv},
	}, nil
}
