package bvh

import "github.com/lumen-render/lumen/pkg/core"

// traversal stack capacity: depth cap plus root and last child
const stackSize = 64 + 2

// Intersect finds the nearest primitive hit within the ray's valid interval.
// The two children of each internal node are visited near-first, ordered by
// the sign of the ray direction along the node's split axis, so the far
// subtree is often pruned once a closer hit has shrunk the interval.
func (b *BVH) Intersect(ray core.Ray) (core.HitRecord, bool) {
	var hit core.HitRecord
	if b.nodeCount == 0 {
		return hit, false
	}

	invDir := ray.InvDirection()
	closest := ray.TMax
	found := false

	var stack [stackSize]int32
	stack[0] = 0
	top := 1

	for top > 0 {
		top--
		node := &b.nodes[stack[top]]

		if !node.Bounds.Hit(ray, invDir, ray.TMin, closest) {
			continue
		}

		if node.PrimCount > 0 {
			for i := node.PrimOffset; i < node.PrimOffset+node.PrimCount; i++ {
				primIdx := b.primIndices[i]
				if h, ok := b.prims[primIdx].Intersect(ray, ray.TMin, closest); ok {
					hit = h
					hit.PrimIndex = primIdx
					closest = h.T
					found = true
				}
			}
			continue
		}

		// Push far child first so the near child pops first.
		near, far := node.Left, node.Right
		if invDir.Axis(int(node.SplitAxis)) < 0 {
			near, far = far, near
		}
		stack[top] = far
		stack[top+1] = near
		top += 2
	}

	return hit, found
}

// IntersectP reports whether anything blocks the ray within its valid
// interval, stopping at the first hit. Used for shadow rays.
func (b *BVH) IntersectP(ray core.Ray) bool {
	if b.nodeCount == 0 {
		return false
	}

	invDir := ray.InvDirection()

	var stack [stackSize]int32
	stack[0] = 0
	top := 1

	for top > 0 {
		top--
		node := &b.nodes[stack[top]]

		if !node.Bounds.Hit(ray, invDir, ray.TMin, ray.TMax) {
			continue
		}

		if node.PrimCount > 0 {
			for i := node.PrimOffset; i < node.PrimOffset+node.PrimCount; i++ {
				if _, ok := b.prims[b.primIndices[i]].Intersect(ray, ray.TMin, ray.TMax); ok {
					return true
				}
			}
			continue
		}

		stack[top] = node.Left
		stack[top+1] = node.Right
		top += 2
	}

	return false
}
