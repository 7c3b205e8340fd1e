// Package bvh implements the bounding volume hierarchy of spec.md §4.3:
// a flat, index-arena tree built either by a surface-area-heuristic (SAH)
// bucketed split or by sorting Morton codes (LBVH), traversed iteratively
// with an explicit stack. Grounded on the teacher's pkg/geometry/bvh.go
// (median-split, pointer-chased recursion), generalized to the two
// runtime-selectable build strategies and the arena layout spec.md calls
// for so a scene's primitives can be indexed once and traversed without
// per-node heap allocation.
package bvh

import (
	"github.com/lumenray/tracer/pkg/core"
)

// Strategy selects the build algorithm.
type Strategy int

const (
	StrategySAH Strategy = iota
	StrategyMorton
)

// node is one entry of the flat arena. A leaf stores [firstPrim, firstPrim+primCount)
// into BVH.prims; an internal node stores the index of its right child (the
// left child is always node index+1, matching the depth-first build order).
type node struct {
	Bounds     core.BBox
	Left       int32 // internal: right child index; leaf: unused
	FirstPrim  int32
	PrimCount  int32 // 0 for internal nodes
	Axis       uint8
}

func (n *node) isLeaf() bool { return n.PrimCount > 0 }

// BVH is an immutable acceleration structure over a fixed set of primitives.
type BVH struct {
	nodes  []node
	prims  []core.Primitive
	Center core.Vec3
	Radius float64
}

const leafThreshold = 4

// Build constructs a BVH over prims using the given strategy. prims is not
// mutated; the BVH keeps its own reordered copy.
func Build(prims []core.Primitive, strategy Strategy) *BVH {
	if len(prims) == 0 {
		return &BVH{Center: core.Vec3{}, Radius: 100.0}
	}

	ordered := make([]core.Primitive, len(prims))
	copy(ordered, prims)

	b := &BVH{}
	switch strategy {
	case StrategyMorton:
		b.nodes = buildMorton(ordered)
	default:
		b.nodes = buildSAH(ordered)
	}
	b.prims = ordered

	root := b.nodes[0].Bounds
	b.Center = root.Center()
	b.Radius = root.Max.Subtract(b.Center).Length()
	return b
}

func (b *BVH) BoundingBox() core.BBox {
	if len(b.nodes) == 0 {
		return core.BBox{}
	}
	return b.nodes[0].Bounds
}

// Hit finds the closest intersection among all primitives, traversing the
// tree iteratively with an explicit stack (spec.md §4.3: no recursion so
// stack depth is bounded and independent of Go's goroutine stack growth).
func (b *BVH) Hit(ray *core.Ray) (*core.Intersection, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}

	var stack [64]int32
	sp := 0
	stack[sp] = 0
	sp++

	var closest *core.Intersection
	hitAnything := false

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := &b.nodes[idx]

		if _, _, ok := n.Bounds.Hit(*ray, ray.MinT, ray.MaxT); !ok {
			continue
		}

		if n.isLeaf() {
			for i := int32(0); i < n.PrimCount; i++ {
				prim := b.prims[n.FirstPrim+i]
				if isect, ok := prim.Hit(ray); ok {
					hitAnything = true
					closest = isect
				}
			}
			continue
		}

		left := idx + 1
		right := n.Left
		// Visit the near child first so ray.MaxT tightens before the far
		// child's box test, per spec.md's near-child-first traversal order.
		if ray.Sign[n.Axis] == 0 {
			stack[sp] = right
			sp++
			stack[sp] = left
			sp++
		} else {
			stack[sp] = left
			sp++
			stack[sp] = right
			sp++
		}
	}

	return closest, hitAnything
}

// Occluded reports whether any primitive blocks the ray within
// [ray.MinT, ray.MaxT], stopping at the first hit (spec.md §4.3).
func (b *BVH) Occluded(ray *core.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [64]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := &b.nodes[idx]

		if _, _, ok := n.Bounds.Hit(*ray, ray.MinT, ray.MaxT); !ok {
			continue
		}

		if n.isLeaf() {
			for i := int32(0); i < n.PrimCount; i++ {
				if b.prims[n.FirstPrim+i].Occluded(ray) {
					return true
				}
			}
			continue
		}

		stack[sp] = idx + 1
		sp++
		stack[sp] = n.Left
		sp++
	}

	return false
}
