package core

import "math"

// Float4 is a four-wide lane of float64 values. It backs matrix rows and the
// per-path hero wavelength quads, and keeps element-wise arithmetic in one
// place so a SIMD backend can slot in behind the same operations.
type Float4 [4]float64

// NewFloat4 creates a lane from four values
func NewFloat4(a, b, c, d float64) Float4 {
	return Float4{a, b, c, d}
}

// SplatFloat4 creates a lane with all elements set to n
func SplatFloat4(n float64) Float4 {
	return Float4{n, n, n, n}
}

// Add returns the element-wise sum
func (f Float4) Add(other Float4) Float4 {
	return Float4{f[0] + other[0], f[1] + other[1], f[2] + other[2], f[3] + other[3]}
}

// Sub returns the element-wise difference
func (f Float4) Sub(other Float4) Float4 {
	return Float4{f[0] - other[0], f[1] - other[1], f[2] - other[2], f[3] - other[3]}
}

// Mul returns the element-wise product
func (f Float4) Mul(other Float4) Float4 {
	return Float4{f[0] * other[0], f[1] * other[1], f[2] * other[2], f[3] * other[3]}
}

// Div returns the element-wise quotient
func (f Float4) Div(other Float4) Float4 {
	return Float4{f[0] / other[0], f[1] / other[1], f[2] / other[2], f[3] / other[3]}
}

// Scale returns the lane with every element multiplied by n
func (f Float4) Scale(n float64) Float4 {
	return Float4{f[0] * n, f[1] * n, f[2] * n, f[3] * n}
}

// MinWith returns the element-wise minimum
func (f Float4) MinWith(other Float4) Float4 {
	return Float4{
		math.Min(f[0], other[0]),
		math.Min(f[1], other[1]),
		math.Min(f[2], other[2]),
		math.Min(f[3], other[3]),
	}
}

// MaxWith returns the element-wise maximum
func (f Float4) MaxWith(other Float4) Float4 {
	return Float4{
		math.Max(f[0], other[0]),
		math.Max(f[1], other[1]),
		math.Max(f[2], other[2]),
		math.Max(f[3], other[3]),
	}
}

// Clamp limits every element to [lo, hi]
func (f Float4) Clamp(lo, hi float64) Float4 {
	return f.MaxWith(SplatFloat4(lo)).MinWith(SplatFloat4(hi))
}

// HSum returns the horizontal sum of the elements
func (f Float4) HSum() float64 {
	return f[0] + f[1] + f[2] + f[3]
}

// HProduct returns the horizontal product of the elements
func (f Float4) HProduct() float64 {
	return f[0] * f[1] * f[2] * f[3]
}

// HMin returns the smallest element
func (f Float4) HMin() float64 {
	return math.Min(math.Min(f[0], f[1]), math.Min(f[2], f[3]))
}

// HMax returns the largest element
func (f Float4) HMax() float64 {
	return math.Max(math.Max(f[0], f[1]), math.Max(f[2], f[3]))
}

// MaxElem is an alias for HMax, reading better at throughput call sites
func (f Float4) MaxElem() float64 {
	return f.HMax()
}

// Shuffle returns a lane built from the elements at the given indices.
// Indices are taken modulo 4, mirroring hardware shuffle semantics.
func (f Float4) Shuffle(i0, i1, i2, i3 int) Float4 {
	return Float4{f[i0&3], f[i1&3], f[i2&3], f[i3&3]}
}

// Dot returns the four-element dot product
func (f Float4) Dot(other Float4) float64 {
	return f[0]*other[0] + f[1]*other[1] + f[2]*other[2] + f[3]*other[3]
}

// IsFinite reports whether every element is finite
func (f Float4) IsFinite() bool {
	for i := 0; i < 4; i++ {
		if math.IsNaN(f[i]) || math.IsInf(f[i], 0) {
			return false
		}
	}
	return true
}
