// Package arena provides a bulk allocator for build-once, read-many scene
// data. Blocks are carved from large backing chunks, never move once issued,
// and are all released together; there is no per-block free.
package arena

import (
	"fmt"
	"unsafe"
)

const (
	// DefaultMinChunkSize is the capacity of the first backing chunk.
	DefaultMinChunkSize = 1 << 16 // 64 KiB

	// DefaultMaxChunkSize caps the chunk-doubling growth policy.
	DefaultMaxChunkSize = 1 << 24 // 16 MiB

	// MaxAlignment is the largest supported block alignment.
	MaxAlignment = 256
)

// Arena hands out exclusively-owned, aligned byte ranges from a growable
// sequence of fixed-capacity backing chunks. Issued blocks remain valid and
// never move until Reset reclaims the whole arena at once.
//
// An Arena is not safe for concurrent allocation; scenes are built
// single-threaded and read-only afterwards.
type Arena struct {
	chunks    [][]byte
	offset    int // allocation cursor within the last chunk
	nextSize  int // capacity for the next chunk
	minSize   int
	maxSize   int
	allocated int // total bytes handed out, excluding padding
}

// New creates an arena with the default growth policy
func New() *Arena {
	return NewWithOptions(DefaultMinChunkSize, DefaultMaxChunkSize)
}

// NewWithOptions creates an arena with explicit initial and maximum chunk
// capacities
func NewWithOptions(minChunkSize, maxChunkSize int) *Arena {
	if minChunkSize <= 0 {
		minChunkSize = DefaultMinChunkSize
	}
	if maxChunkSize < minChunkSize {
		maxChunkSize = minChunkSize
	}
	return &Arena{
		nextSize: minChunkSize,
		minSize:  minChunkSize,
		maxSize:  maxChunkSize,
	}
}

// Alloc returns an exclusively-owned block of size bytes aligned to align.
// Alignment must be a power of two no larger than MaxAlignment. The block
// does not overlap any previously issued block and stays valid until Reset.
func (a *Arena) Alloc(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("arena: negative allocation size %d", size)
	}
	if align <= 0 {
		align = 1
	}
	if align&(align-1) != 0 || align > MaxAlignment {
		return nil, fmt.Errorf("arena: alignment %d is not a power of two <= %d", align, MaxAlignment)
	}
	if size == 0 {
		return []byte{}, nil
	}

	cur := a.currentChunk()
	start := alignUp(a.chunkBase()+a.offset, align) - a.chunkBase()
	if cur == nil || start+size > cap(*cur) {
		if err := a.grow(size + align); err != nil {
			return nil, err
		}
		cur = a.currentChunk()
		start = alignUp(a.chunkBase()+a.offset, align) - a.chunkBase()
	}

	block := (*cur)[start : start+size : start+size]
	a.offset = start + size
	a.allocated += size
	return block, nil
}

// currentChunk returns the active chunk, or nil before the first Alloc
func (a *Arena) currentChunk() *[]byte {
	if len(a.chunks) == 0 {
		return nil
	}
	return &a.chunks[len(a.chunks)-1]
}

// chunkBase returns the address of the active chunk's first byte, used to
// compute aligned offsets against the actual backing memory
func (a *Arena) chunkBase() int {
	cur := a.currentChunk()
	if cur == nil || cap(*cur) == 0 {
		return 0
	}
	full := (*cur)[:1]
	return int(uintptr(unsafe.Pointer(&full[0])))
}

// grow appends a fresh backing chunk large enough for need bytes. Existing
// chunks are left untouched so previously issued blocks never move.
func (a *Arena) grow(need int) error {
	size := a.nextSize
	if size < need {
		size = need
	}

	// Chunk allocation failure in Go surfaces as a runtime panic; recover
	// it into an error so resource exhaustion is reported, not swallowed.
	var chunk []byte
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("arena: backing chunk allocation of %d bytes failed: %v", size, r)
			}
		}()
		chunk = make([]byte, size)
		return nil
	}()
	if err != nil {
		return err
	}

	a.chunks = append(a.chunks, chunk)
	a.offset = 0
	if a.nextSize < a.maxSize {
		a.nextSize *= 2
		if a.nextSize > a.maxSize {
			a.nextSize = a.maxSize
		}
	}
	return nil
}

// Reset releases the arena's entire contents at once. Blocks issued before
// the call must no longer be referenced.
func (a *Arena) Reset() {
	a.chunks = nil
	a.offset = 0
	a.allocated = 0
	a.nextSize = a.minSize
}

// TotalAllocated returns the total bytes handed out, excluding alignment
// padding
func (a *Arena) TotalAllocated() int {
	return a.allocated
}

// ChunkCount returns the number of backing chunks currently owned
func (a *Arena) ChunkCount() int {
	return len(a.chunks)
}

// alignUp rounds n up to the next multiple of align (a power of two)
func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// AllocSlice carves a typed slice of n elements from the arena, aligned for
// T. The slice aliases arena memory: it never moves and lives until Reset.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("arena: negative slice length %d", n)
	}
	if n == 0 {
		return []T{}, nil
	}

	var zero T
	elem := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))

	block, err := a.Alloc(n*elem, align)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&block[0])), n), nil
}
