package bvh

import "github.com/lumenray/tracer/pkg/core"

// numBuckets is the number of SAH buckets per axis, matching the common
// choice in production path tracers (pbrt, etc.) for a good cost/quality
// tradeoff.
const numBuckets = 12

type bucket struct {
	count  int
	bounds core.BBox
}

// buildSAH builds the arena depth-first, reordering prims in place and
// choosing, at each internal node, the axis and bucket split minimizing the
// surface-area-heuristic cost (spec.md §4.3).
func buildSAH(prims []core.Primitive) []node {
	centroidBounds := make([]core.BBox, len(prims))
	for i, p := range prims {
		centroidBounds[i] = p.BoundingBox()
	}

	nodes := make([]node, 0, 2*len(prims))
	buildSAHRange(prims, 0, len(prims), &nodes)
	return nodes
}

func buildSAHRange(prims []core.Primitive, start, end int, nodes *[]node) int32 {
	bounds := core.EmptyBBox()
	for i := start; i < end; i++ {
		bounds = bounds.Union(prims[i].BoundingBox())
	}

	myIdx := int32(len(*nodes))
	*nodes = append(*nodes, node{Bounds: bounds})

	count := end - start
	if count <= leafThreshold {
		(*nodes)[myIdx].FirstPrim = int32(start)
		(*nodes)[myIdx].PrimCount = int32(count)
		return myIdx
	}

	centroidBounds := core.EmptyBBox()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.ExpandPoint(prims[i].BoundingBox().Center())
	}

	// Bucket and cost all 3 axes (spec.md §4.3), not just the longest, and
	// keep the minimum-cost (axis, bucket) pair found across all of them;
	// ties are broken deterministically by visiting axes 0,1,2 and splits
	// 0..numBuckets-2 in order and only replacing the incumbent on a
	// strictly lower cost.
	bestAxis, bestSplit := -1, -1
	var bestCost float64
	for axis := 0; axis < 3; axis++ {
		lo, hi := centroidBounds.Axis(axis)
		if hi-lo < 1e-12 {
			continue
		}

		var buckets [numBuckets]bucket
		for i := range buckets {
			buckets[i].bounds = core.EmptyBBox()
		}
		bucketOf := axisBucketer(axis, lo, hi)
		for i := start; i < end; i++ {
			b := bucketOf(prims[i])
			buckets[b].count++
			buckets[b].bounds = buckets[b].bounds.Union(prims[i].BoundingBox())
		}

		for split := 0; split < numBuckets-1; split++ {
			var leftBounds, rightBounds = core.EmptyBBox(), core.EmptyBBox()
			var leftCount, rightCount int
			for i := 0; i <= split; i++ {
				if buckets[i].count > 0 {
					leftBounds = leftBounds.Union(buckets[i].bounds)
					leftCount += buckets[i].count
				}
			}
			for i := split + 1; i < numBuckets; i++ {
				if buckets[i].count > 0 {
					rightBounds = rightBounds.Union(buckets[i].bounds)
					rightCount += buckets[i].count
				}
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			cost := float64(leftCount)*leftBounds.SurfaceArea() + float64(rightCount)*rightBounds.SurfaceArea()
			if bestAxis < 0 || cost < bestCost {
				bestAxis, bestSplit, bestCost = axis, split, cost
			}
		}
	}

	var axis int
	var mid int
	if bestAxis < 0 {
		// Every axis is flat (or, degenerately, none produced a non-empty
		// split): fall back to a median-of-index-range split rather than an
		// oversized leaf, per spec.md §4.3.
		axis = centroidBounds.LongestAxis()
		mid = (start + end) / 2
	} else {
		// A minimum-cost split was found; partition by it even if its cost
		// does not beat the no-split baseline, per spec.md §4.3 ("if no
		// candidate improves on the baseline ... still partition by the
		// best found").
		axis = bestAxis
		lo, hi := centroidBounds.Axis(axis)
		bucketOf := axisBucketer(axis, lo, hi)
		mid = partition(prims, start, end, func(p core.Primitive) bool {
			return bucketOf(p) <= bestSplit
		})
		if mid == start || mid == end {
			mid = (start + end) / 2
		}
	}

	leftIdx := buildSAHRange(prims, start, mid, nodes)
	_ = leftIdx // left child is always myIdx+1 by construction
	rightIdx := buildSAHRange(prims, mid, end, nodes)

	(*nodes)[myIdx].Left = rightIdx
	(*nodes)[myIdx].Axis = uint8(axis)
	return myIdx
}

// axisBucketer returns the bucket-index function for axis given the
// centroid bounds [lo, hi] on that axis.
func axisBucketer(axis int, lo, hi float64) func(core.Primitive) int {
	return func(p core.Primitive) int {
		c := centroidAxis(p, axis)
		b := int(float64(numBuckets) * (c - lo) / (hi - lo))
		if b >= numBuckets {
			b = numBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}
}

func centroidAxis(p core.Primitive, axis int) float64 {
	c := p.BoundingBox().Center()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// partition reorders prims[start:end] in place (Lomuto-style) so every
// element for which keep returns true precedes every element for which it
// returns false, and returns the boundary index.
func partition(prims []core.Primitive, start, end int, keep func(core.Primitive) bool) int {
	i := start
	for j := start; j < end; j++ {
		if keep(prims[j]) {
			prims[i], prims[j] = prims[j], prims[i]
			i++
		}
	}
	return i
}
