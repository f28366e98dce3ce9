// Package sampler generates deterministic, well-stratified sample values for
// the integrator. Every value is a pure function of (pixel, sample index,
// dimension), so sample generation is reproducible and lock-free across
// worker threads.
package sampler

// Sequence selects the low-discrepancy generator
type Sequence int

const (
	// Halton uses the radical inverse in successive prime bases
	Halton Sequence = iota
	// Sobol uses direction-number bit manipulation with hash scrambling
	Sobol
	// Hashed is a stratification-free fallback built on integer hashing
	Hashed
)

// String returns the configuration name of the sequence
func (s Sequence) String() string {
	switch s {
	case Halton:
		return "halton"
	case Sobol:
		return "sobol"
	default:
		return "hashed"
	}
}

// ParseSequence maps a configuration name to a Sequence, defaulting to Sobol
func ParseSequence(name string) Sequence {
	switch name {
	case "halton":
		return Halton
	case "hashed":
		return Hashed
	default:
		return Sobol
	}
}

// Dimension layout consumed by the integrator. The camera block occupies the
// first dimensions of every sample vector; each bounce then consumes its own
// fixed-size block, so exhausting one bounce's dimensions cannot disturb the
// next bounce's sequence.
const (
	DimFilterU    = 0 // pixel filter offset
	DimFilterV    = 1
	DimLensU      = 2 // lens position for depth of field
	DimLensV      = 3
	DimTime       = 4 // shutter time for motion blur
	DimWavelength = 5 // hero wavelength selection

	CameraDims = 6

	// Per-bounce block: BSDF (u,v), light selection, light (u,v),
	// Russian roulette.
	DimBSDFU       = 0
	DimBSDFV       = 1
	DimLightSelect = 2
	DimLightU      = 3
	DimLightV      = 4
	DimRoulette    = 5

	DimsPerBounce = 6
)

// Sample returns the sample value for (pixel, sample index, dimension) under
// the chosen sequence. The result lies in [0,1) and is bit-identical for
// identical inputs. Dimensions beyond the generator's precomputed tables
// degrade gracefully by wrapping with a decorrelating offset.
func Sample(seq Sequence, pixel, index, dimension uint32) float64 {
	// Per-pixel offset decorrelates pixels that would otherwise share a
	// sequence, without any shared generator state.
	switch seq {
	case Halton:
		return haltonSample(dimension, index, pixel)
	case Sobol:
		return sobolSample(dimension, index, pixel)
	default:
		return hashedSample(dimension, index, pixel)
	}
}

// hashedSample is the table-free fallback generator
func hashedSample(dimension, index, pixel uint32) float64 {
	h := hashU32(index^(dimension*0x9e3779b9), pixel)
	return uintToUnitFloat(h)
}

// hashU32 is a small integer hash used for decorrelation offsets and
// scrambling throughout the package
func hashU32(n, seed uint32) uint32 {
	h := n
	for i := 0; i < 3; i++ {
		h *= 1936502639
		h ^= h >> 16
		h += seed
	}
	return h
}

// uintToUnitFloat maps a 32-bit value to [0,1)
func uintToUnitFloat(n uint32) float64 {
	return float64(n) * (1.0 / 4294967808.0) // slightly above 2^32 keeps the result < 1
}

// PixelSampler is a cursor over the pure Sample function for one (pixel,
// sample index) pair. It tracks the current dimension and re-partitions
// dimensions per bounce.
type PixelSampler struct {
	seq    Sequence
	pixel  uint32
	index  uint32
	dim    uint32
	bounce uint32
}

// NewPixelSampler creates a cursor positioned at the first camera dimension
func NewPixelSampler(seq Sequence, pixel, index uint32) *PixelSampler {
	return &PixelSampler{seq: seq, pixel: pixel, index: index}
}

// Get1D returns the next dimension's value and advances the cursor
func (p *PixelSampler) Get1D() float64 {
	v := Sample(p.seq, p.pixel, p.index, p.dim)
	p.dim++
	return v
}

// Get2D returns the next two dimensions as a pair
func (p *PixelSampler) Get2D() (float64, float64) {
	u := p.Get1D()
	v := p.Get1D()
	return u, v
}

// StartBounce positions the cursor at the start of bounce b's dimension
// block. Camera dimensions occupy the block before bounce 0.
func (p *PixelSampler) StartBounce(b int) {
	p.bounce = uint32(b)
	p.dim = CameraDims + uint32(b)*DimsPerBounce
}

// Seek positions the cursor at the given offset within the current bounce's
// dimension block. Reading from fixed offsets keeps each purpose (BSDF,
// light selection, roulette) on a stable dimension regardless of how many
// values earlier stages consumed.
func (p *PixelSampler) Seek(offset int) {
	p.dim = CameraDims + p.bounce*DimsPerBounce + uint32(offset)
}

// Dimension returns the cursor's current dimension, mostly for tests
func (p *PixelSampler) Dimension() uint32 {
	return p.dim
}
