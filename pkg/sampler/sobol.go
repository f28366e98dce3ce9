package sampler

// Sobol sequence generation from direction numbers. Direction vectors are
// derived at init from primitive-polynomial data (Joe and Kuo's tables);
// dimension 0 is the van der Corput sequence. Scrambling XORs the result
// with per-(pixel, dimension) hash bits, which decorrelates pixels while
// preserving the (0,2)-sequence stratification within each pixel.

import "math/bits"

const sobolBits = 32

// sobolPoly describes one dimension's primitive polynomial: its degree s,
// coefficient bits a, and initial direction values m.
type sobolPoly struct {
	s uint32
	a uint32
	m []uint32
}

// First dimensions of the Joe-Kuo direction number table. Dimension 0 (van
// der Corput) is implicit.
var sobolPolys = []sobolPoly{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
	{5, 4, []uint32{1, 1, 5, 5, 5}},
	{5, 7, []uint32{1, 1, 7, 11, 19}},
	{5, 11, []uint32{1, 1, 5, 1, 1}},
	{5, 13, []uint32{1, 1, 1, 3, 11}},
	{5, 14, []uint32{1, 3, 5, 5, 31}},
	{6, 1, []uint32{1, 3, 3, 9, 7, 49}},
	{6, 13, []uint32{1, 1, 1, 15, 21, 21}},
	{6, 16, []uint32{1, 3, 1, 13, 27, 49}},
	{6, 19, []uint32{1, 1, 1, 15, 7, 5}},
	{6, 22, []uint32{1, 3, 1, 15, 13, 25}},
	{6, 25, []uint32{1, 1, 5, 5, 19, 61}},
	{7, 1, []uint32{1, 3, 7, 11, 23, 15, 103}},
	{7, 4, []uint32{1, 3, 7, 13, 13, 21, 79}},
}

// SobolDimensions is the number of dimensions with precomputed direction
// vectors. Higher dimensions wrap with a decorrelating index offset.
var SobolDimensions = uint32(len(sobolPolys) + 1)

// sobolVectors[d][k] is direction vector v_k for dimension d, left-aligned
// in 32 bits
var sobolVectors [][sobolBits]uint32

func init() {
	sobolVectors = make([][sobolBits]uint32, len(sobolPolys)+1)

	// Dimension 0: van der Corput, v_k = 2^(31-k)
	for k := 0; k < sobolBits; k++ {
		sobolVectors[0][k] = 1 << (31 - k)
	}

	for d, poly := range sobolPolys {
		v := &sobolVectors[d+1]
		s := int(poly.s)

		for k := 0; k < s && k < sobolBits; k++ {
			v[k] = poly.m[k] << (31 - k)
		}
		for k := s; k < sobolBits; k++ {
			prev := v[k-s]
			vk := prev ^ (prev >> s)
			for j := 1; j < s; j++ {
				if (poly.a>>(s-1-j))&1 == 1 {
					vk ^= v[k-j]
				}
			}
			v[k] = vk
		}
	}
}

// sobolSample returns the index-th Sobol value in the given dimension with
// XOR scrambling derived from the pixel
func sobolSample(dimension, index, pixel uint32) float64 {
	if dimension >= SobolDimensions {
		// Graceful degrade, same policy as the Halton generator.
		index += hashU32(dimension, 0x51633e2d)
		dimension %= SobolDimensions
	}

	v := &sobolVectors[dimension]
	result := uint32(0)
	for i := index; i != 0; i &= i - 1 {
		result ^= v[bits.TrailingZeros32(i)]
	}

	// Random-digit scramble: XOR with pixel-derived bits. Applied after
	// generation so identical inputs stay bit-identical.
	result ^= hashU32(pixel, dimension+0x9e3779b9)

	return uintToUnitFloat(result)
}
