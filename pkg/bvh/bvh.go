// Package bvh builds and traverses a bounding volume hierarchy over scene
// primitives. Nodes live contiguously in arena-owned memory and reference
// children and primitives by plain integer indices; the tree is built once
// and is read-only during rendering.
package bvh

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lumen-render/lumen/pkg/arena"
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/logging"
)

var log = logging.New("bvh")

// Primitive is the geometric capability set the hierarchy is built over
type Primitive interface {
	BoundingBox() core.AABB
	Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool)
}

// Node is one hierarchy node. A node is a leaf when PrimCount > 0, in which
// case it references PrimCount entries of the primitive index permutation
// starting at PrimOffset. Internal nodes reference their children by index
// into the node array.
type Node struct {
	Bounds     core.AABB
	Left       int32
	Right      int32
	PrimOffset int32
	PrimCount  int32
	SplitAxis  uint8
}

// Config holds the build-time tuning parameters
type Config struct {
	MaxLeafSize      int     // Maximum primitives per leaf
	NumBins          int     // SAH bins per axis
	TraversalCost    float64 // Relative cost of visiting an internal node
	IntersectionCost float64 // Relative cost of one primitive test
	MaxDepth         int     // Hard depth cap; balanced splits near the cap
}

// DefaultConfig returns the tuning defaults
func DefaultConfig() Config {
	return Config{
		MaxLeafSize:      4,
		NumBins:          13,
		TraversalCost:    1.0,
		IntersectionCost: 2.0,
		MaxDepth:         64,
	}
}

// BVH is an immutable hierarchy over a primitive list. Traversal is
// read-only and re-entrant; concurrent rays need no synchronization.
type BVH struct {
	nodes       []Node  // arena-owned, contiguous
	nodeCount   int32
	primIndices []int32 // arena-owned permutation of primitive indices
	prims       []Primitive
	cfg         Config
	depth       int
}

// buildEntry carries per-primitive data used only during construction
type buildEntry struct {
	bounds   core.AABB
	centroid core.Vec3
	index    int32
}

// Build constructs a hierarchy over prims, carving node and index storage
// from the arena. Primitives with malformed bounding boxes (NaN or inverted)
// fail the whole build with an error naming the offender, since a partially
// built tree is unsafe to traverse.
func Build(a *arena.Arena, prims []Primitive, cfg Config) (*BVH, error) {
	if cfg.MaxLeafSize < 1 {
		cfg.MaxLeafSize = 1
	}
	if cfg.NumBins < 2 {
		cfg.NumBins = 2
	}
	if cfg.MaxDepth < 2 {
		cfg.MaxDepth = 2
	}

	entries := make([]buildEntry, len(prims))
	for i, prim := range prims {
		bounds := prim.BoundingBox()
		if !bounds.IsValid() {
			return nil, fmt.Errorf("bvh: primitive %d has malformed bounds min=%v max=%v", i, bounds.Min, bounds.Max)
		}
		entries[i] = buildEntry{
			bounds:   bounds,
			centroid: bounds.Center(),
			index:    int32(i),
		}
	}

	b := &BVH{prims: prims, cfg: cfg}

	if len(prims) == 0 {
		return b, nil
	}

	// A binary tree over n leaves has at most 2n-1 nodes. Carving the
	// worst case up front keeps node storage contiguous and immovable.
	maxNodes := 2*len(prims) - 1
	nodes, err := arena.AllocSlice[Node](a, maxNodes)
	if err != nil {
		return nil, fmt.Errorf("bvh: node storage: %w", err)
	}
	indices, err := arena.AllocSlice[int32](a, len(prims))
	if err != nil {
		return nil, fmt.Errorf("bvh: index storage: %w", err)
	}
	b.nodes = nodes
	b.primIndices = indices

	start := time.Now()
	b.buildRecursive(entries, 0, 0)
	log.Debugf("built %d nodes over %d primitives in %v (depth %d)",
		b.nodeCount, len(prims), time.Since(start), b.depth)

	return b, nil
}

// buildRecursive partitions entries into a subtree and returns its node
// index. offset is the subtree's starting slot in the primitive index
// permutation.
func (b *BVH) buildRecursive(entries []buildEntry, offset int32, depth int) int32 {
	if depth > b.depth {
		b.depth = depth
	}

	bounds := core.EmptyAABB()
	for i := range entries {
		bounds = bounds.Union(entries[i].bounds)
	}

	if len(entries) == 1 {
		return b.createLeaf(entries, offset, bounds)
	}

	var mid int
	var axis int
	if logBase2(len(entries)) >= b.cfg.MaxDepth-depth {
		// Near the depth cap: balanced splitting guarantees the
		// remaining subtree fits.
		mid, axis = b.balancedSplit(entries)
	} else {
		mid, axis = b.sahSplit(entries, bounds)
		if mid < 0 {
			// No split beats a leaf's intrinsic cost. Stop here
			// unless the leaf size cap forces a split anyway.
			if len(entries) <= b.cfg.MaxLeafSize {
				return b.createLeaf(entries, offset, bounds)
			}
			mid, axis = b.balancedSplit(entries)
		}
	}

	me := b.allocNode()
	left := b.buildRecursive(entries[:mid], offset, depth+1)
	right := b.buildRecursive(entries[mid:], offset+int32(mid), depth+1)

	b.nodes[me] = Node{
		Bounds:    bounds,
		Left:      left,
		Right:     right,
		SplitAxis: uint8(axis),
	}
	return me
}

// createLeaf records a leaf node over the given entries
func (b *BVH) createLeaf(entries []buildEntry, offset int32, bounds core.AABB) int32 {
	for i := range entries {
		b.primIndices[offset+int32(i)] = entries[i].index
	}
	me := b.allocNode()
	b.nodes[me] = Node{
		Bounds:     bounds,
		PrimOffset: offset,
		PrimCount:  int32(len(entries)),
	}
	return me
}

// allocNode hands out the next contiguous node slot
func (b *BVH) allocNode() int32 {
	me := b.nodeCount
	b.nodeCount++
	return me
}

// sahSplit evaluates binned surface-area-heuristic candidates on all three
// axes and partitions entries at the cheapest one. Returns mid < 0 when no
// candidate beats the intrinsic cost of a leaf and the node is small enough
// to become one. Ties prefer the more balanced primitive split.
func (b *BVH) sahSplit(entries []buildEntry, bounds core.AABB) (mid, axis int) {
	centroidBounds := core.EmptyAABB()
	for i := range entries {
		centroidBounds = centroidBounds.UnionPoint(entries[i].centroid)
	}

	numBins := b.cfg.NumBins
	type bin struct {
		bounds core.AABB
		count  int
	}

	bestCost := math.Inf(1)
	bestBalance := math.MaxInt64
	bestAxis := -1
	bestSplit := 0.0

	size := centroidBounds.Size()
	for d := 0; d < 3; d++ {
		extent := size.Axis(d)
		if extent <= 0 {
			continue
		}

		bins := make([]bin, numBins)
		for i := range bins {
			bins[i].bounds = core.EmptyAABB()
		}

		lo := centroidBounds.Min.Axis(d)
		scale := float64(numBins) / extent
		for i := range entries {
			bi := int((entries[i].centroid.Axis(d) - lo) * scale)
			if bi >= numBins {
				bi = numBins - 1
			}
			bins[bi].bounds = bins[bi].bounds.Union(entries[i].bounds)
			bins[bi].count++
		}

		// Evaluate the numBins-1 split planes between bins.
		for split := 1; split < numBins; split++ {
			leftBounds := core.EmptyAABB()
			rightBounds := core.EmptyAABB()
			leftCount, rightCount := 0, 0
			for i := 0; i < split; i++ {
				leftBounds = leftBounds.Union(bins[i].bounds)
				leftCount += bins[i].count
			}
			for i := split; i < numBins; i++ {
				rightBounds = rightBounds.Union(bins[i].bounds)
				rightCount += bins[i].count
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}

			cost := leftBounds.SurfaceArea()*float64(leftCount) +
				rightBounds.SurfaceArea()*float64(rightCount)
			balance := leftCount - rightCount
			if balance < 0 {
				balance = -balance
			}

			if cost < bestCost || (cost == bestCost && balance < bestBalance) {
				bestCost = cost
				bestBalance = balance
				bestAxis = d
				bestSplit = lo + extent*float64(split)/float64(numBins)
			}
		}
	}

	if bestAxis < 0 {
		// All centroids coincide; indicate no usable SAH split.
		return -1, 0
	}

	// Compare against the intrinsic cost of stopping here as a leaf.
	n := float64(len(entries))
	parentArea := bounds.SurfaceArea()
	if parentArea > 0 {
		leafCost := b.cfg.IntersectionCost * n
		splitCost := b.cfg.TraversalCost + b.cfg.IntersectionCost*bestCost/parentArea
		if splitCost >= leafCost {
			return -1, 0
		}
	}

	mid = partitionEntries(entries, bestAxis, bestSplit)
	if mid == 0 || mid == len(entries) {
		// Binning placed everything on one side; fall back.
		return -1, 0
	}
	return mid, bestAxis
}

// balancedSplit sorts by centroid along the longest axis and splits at the
// median, always producing two non-empty halves
func (b *BVH) balancedSplit(entries []buildEntry) (mid, axis int) {
	centroidBounds := core.EmptyAABB()
	for i := range entries {
		centroidBounds = centroidBounds.UnionPoint(entries[i].centroid)
	}
	axis = centroidBounds.LongestAxis()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].centroid.Axis(axis) < entries[j].centroid.Axis(axis)
	})
	return len(entries) / 2, axis
}

// partitionEntries moves entries with centroid below the split plane to the
// front and returns the boundary index
func partitionEntries(entries []buildEntry, axis int, split float64) int {
	mid := 0
	for i := range entries {
		if entries[i].centroid.Axis(axis) < split {
			entries[i], entries[mid] = entries[mid], entries[i]
			mid++
		}
	}
	return mid
}

// logBase2 returns floor(log2(n)) for n >= 1
func logBase2(n int) int {
	log := 0
	for n > 1 {
		n >>= 1
		log++
	}
	return log
}

// NodeCount returns the number of nodes in the hierarchy
func (b *BVH) NodeCount() int {
	return int(b.nodeCount)
}

// Depth returns the deepest level of the hierarchy
func (b *BVH) Depth() int {
	return b.depth
}

// Bounds returns the root node's bounding box
func (b *BVH) Bounds() core.AABB {
	if b.nodeCount == 0 {
		return core.AABB{}
	}
	return b.nodes[0].Bounds
}

// Validate walks the whole tree checking that every node's bounding box
// contains its children's (or its primitives') boxes. Used by tests and
// available to callers that want a post-build integrity check.
func (b *BVH) Validate() error {
	if b.nodeCount == 0 {
		return nil
	}
	return b.validateNode(0)
}

func (b *BVH) validateNode(idx int32) error {
	node := &b.nodes[idx]
	if !node.Bounds.IsValid() {
		return fmt.Errorf("bvh: node %d has invalid bounds", idx)
	}

	if node.PrimCount > 0 {
		for i := node.PrimOffset; i < node.PrimOffset+node.PrimCount; i++ {
			prim := b.prims[b.primIndices[i]]
			if !node.Bounds.Contains(prim.BoundingBox()) {
				return fmt.Errorf("bvh: leaf %d does not contain primitive %d", idx, b.primIndices[i])
			}
		}
		return nil
	}

	for _, child := range [2]int32{node.Left, node.Right} {
		if child < 0 || child >= b.nodeCount {
			return fmt.Errorf("bvh: node %d references child %d outside [0,%d)", idx, child, b.nodeCount)
		}
		if !node.Bounds.Contains(b.nodes[child].Bounds) {
			return fmt.Errorf("bvh: node %d does not contain child %d", idx, child)
		}
		if err := b.validateNode(child); err != nil {
			return err
		}
	}
	return nil
}
