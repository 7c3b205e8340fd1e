package bvh

import (
	"math/bits"
	"sort"

	"github.com/lumenray/tracer/pkg/core"
)

// buildMorton builds the arena by sorting primitives on a 30-bit
// interleaved Morton code of their normalized centroid (10 bits per axis)
// and recursively splitting runs at the highest differing bit, per the
// classic LBVH construction (spec.md §4.3). findSplitPosition uses unsigned 32-bit
// arithmetic throughout so the common off-by-sign bug of comparing codes
// as signed ints near the 2^31 boundary cannot occur.
func buildMorton(prims []core.Primitive) []node {
	n := len(prims)
	if n == 1 {
		bounds := prims[0].BoundingBox()
		return []node{{Bounds: bounds, FirstPrim: 0, PrimCount: 1}}
	}

	sceneBounds := core.EmptyBBox()
	for _, p := range prims {
		sceneBounds = sceneBounds.Union(p.BoundingBox())
	}
	extent := sceneBounds.Extent()

	type keyed struct {
		code uint32
		prim core.Primitive
	}
	items := make([]keyed, n)
	for i, p := range prims {
		c := p.BoundingBox().Center()
		nx := normalizeAxis(c.X, sceneBounds.Min.X, extent.X)
		ny := normalizeAxis(c.Y, sceneBounds.Min.Y, extent.Y)
		nz := normalizeAxis(c.Z, sceneBounds.Min.Z, extent.Z)
		items[i] = keyed{code: mortonCode3(nx, ny, nz), prim: p}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].code < items[j].code })

	codes := make([]uint32, n)
	for i, it := range items {
		prims[i] = it.prim
		codes[i] = it.code
	}

	nodes := make([]node, 0, 2*n)
	buildMortonRange(prims, codes, 0, n, &nodes)
	return nodes
}

func normalizeAxis(v, lo, extent float64) uint32 {
	if extent <= 0 {
		return 0
	}
	t := (v - lo) / extent
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint32(t * 1023.0) // 10 bits
}

func expandBits10(v uint32) uint64 {
	x := uint64(v) & 0x3FF
	x = (x | (x << 16)) & 0x30000FF
	x = (x | (x << 8)) & 0x300F00F
	x = (x | (x << 4)) & 0x30C30C3
	x = (x | (x << 2)) & 0x9249249
	return x
}

func mortonCode3(x, y, z uint32) uint32 {
	code := expandBits10(x) | (expandBits10(y) << 1) | (expandBits10(z) << 2)
	return uint32(code)
}

// buildMortonRange recursively partitions [start, end) at the highest bit
// where codes[start] and codes[end-1] differ.
func buildMortonRange(prims []core.Primitive, codes []uint32, start, end int, nodes *[]node) int32 {
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

	split := findSplitPosition(codes, start, end)
	if split <= start || split >= end {
		split = (start + end) / 2
	}

	buildMortonRange(prims, codes, start, split, nodes)
	rightIdx := buildMortonRange(prims, codes, split, end, nodes)
	(*nodes)[myIdx].Left = rightIdx
	return myIdx
}

// findSplitPosition locates the highest differing bit between the first
// and last code of [start, end) and returns the index of the first element
// on the high side of that bit, using unsigned 32-bit XOR/CLZ throughout.
func findSplitPosition(codes []uint32, start, end int) int {
	first := codes[start]
	last := codes[end-1]

	if first == last {
		return (start + end) / 2
	}

	commonPrefix := bits.LeadingZeros32(first ^ last)

	split := start
	step := end - start
	for {
		step = (step + 1) / 2
		newSplit := split + step
		if newSplit < end {
			splitCode := codes[newSplit]
			splitPrefix := bits.LeadingZeros32(first ^ splitCode)
			if splitPrefix > commonPrefix {
				split = newSplit
			}
		}
		if step <= 1 {
			break
		}
	}
	return split + 1
}
