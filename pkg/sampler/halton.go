package sampler

import "math"

// primes holds the bases for the first 64 Halton dimensions
var primes = [64]uint32{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131,
	137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223,
	227, 229, 233, 239, 241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307, 311,
}

// HaltonDimensions is the number of dimensions with a dedicated prime base.
// Higher dimensions wrap with a decorrelating index offset.
const HaltonDimensions = uint32(len(primes))

// haltonSample returns the radical inverse of index in the dimension's prime
// base, decorrelated per pixel with a Cranley-Patterson rotation.
func haltonSample(dimension, index, pixel uint32) float64 {
	if dimension >= HaltonDimensions {
		// Graceful degrade: reuse a base from the table with an index
		// offset derived from the overflowing dimension.
		index += hashU32(dimension, 0x7f4a7c15)
		dimension %= HaltonDimensions
	}

	v := radicalInverse(primes[dimension], index)

	// Rotation keeps the low-discrepancy structure while giving every
	// pixel its own sequence.
	rotation := uintToUnitFloat(hashU32(pixel, dimension+1))
	v += rotation
	if v >= 1.0 {
		v -= 1.0
	}
	return v
}

// radicalInverse mirrors the base-b digits of n about the radix point
func radicalInverse(base, n uint32) float64 {
	invBase := 1.0 / float64(base)
	invBaseN := 1.0
	reversed := uint64(0)
	rem := uint64(n)
	b := uint64(base)

	for rem > 0 {
		next := rem / b
		digit := rem - next*b
		reversed = reversed*b + digit
		invBaseN *= invBase
		rem = next
	}

	return math.Min(float64(reversed)*invBaseN, 0.99999999999999989)
}
