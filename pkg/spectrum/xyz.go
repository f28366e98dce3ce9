package spectrum

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// XYZ is a CIE tristimulus value
type XYZ struct {
	X, Y, Z float64
}

// Add returns the sum of two tristimulus values
func (c XYZ) Add(other XYZ) XYZ {
	return XYZ{c.X + other.X, c.Y + other.Y, c.Z + other.Z}
}

// Scale returns the tristimulus value scaled by n
func (c XYZ) Scale(n float64) XYZ {
	return XYZ{c.X * n, c.Y * n, c.Z * n}
}

// IsFinite reports whether all components are finite
func (c XYZ) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0) &&
		!math.IsNaN(c.Z) && !math.IsInf(c.Z, 0)
}

// ToRGB converts to linear Rec.709 RGB
func (c XYZ) ToRGB() core.Vec3 {
	return core.Vec3{
		X: 3.2404542*c.X - 1.5371385*c.Y - 0.4985314*c.Z,
		Y: -0.9692660*c.X + 1.8760108*c.Y + 0.0415560*c.Z,
		Z: 0.0556434*c.X - 0.2040259*c.Y + 1.0572252*c.Z,
	}
}

// RGBToXYZ converts linear Rec.709 RGB to XYZ
func RGBToXYZ(rgb core.Vec3) XYZ {
	return XYZ{
		X: 0.4124564*rgb.X + 0.3575761*rgb.Y + 0.1804375*rgb.Z,
		Y: 0.2126729*rgb.X + 0.7151522*rgb.Y + 0.0721750*rgb.Z,
		Z: 0.0193339*rgb.X + 0.1191920*rgb.Y + 0.9503041*rgb.Z,
	}
}

// SRGBGamma applies the sRGB transfer function to a linear value
func SRGBGamma(n float64) float64 {
	if n < 0.0031308 {
		return n * 12.92
	}
	return 1.055*math.Pow(n, 1.0/2.4) - 0.055
}

// SRGBInvGamma inverts the sRGB transfer function
func SRGBInvGamma(n float64) float64 {
	if n < 0.04045 {
		return n / 12.92
	}
	return math.Pow((n+0.055)/1.055, 2.4)
}
