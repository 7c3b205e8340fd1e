package core

// aliasEntry is one bucket of a Vose-style alias table: a draw either
// keeps its own index or redirects to SecondElem with probability
// (1 - Ratio), giving O(1) sampling of an arbitrary discrete distribution
// (spec.md §3 AliasTable).
type aliasEntry struct {
	FirstPmf   float64 // original probability mass of this bucket's own index
	SecondPmf  float64 // probability mass of the index it may redirect to
	Ratio      float64 // probability of keeping this bucket's own index on a draw, in [0,1]
	SecondElem int     // index to redirect to when the draw fails Ratio
}

// AliasTable draws a discrete index in O(1) with its exact pmf.
type AliasTable struct {
	entries []aliasEntry
	firstOf []int // each bucket's own index, aligned with entries
	pmf     []float64
}

// NewAliasTable builds an alias table over the given (unnormalized)
// weights. Weights must be non-negative; if none is positive, the table
// falls back to a uniform distribution.
func NewAliasTable(weights []float64) *AliasTable {
	n := len(weights)
	t := &AliasTable{
		entries: make([]aliasEntry, n),
		firstOf: make([]int, n),
		pmf:     make([]float64, n),
	}
	if n == 0 {
		return t
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		// Degenerate: fall back to a uniform distribution so Sample never
		// panics on an all-zero weight vector.
		for i := range weights {
			t.pmf[i] = 1.0 / float64(n)
		}
	} else {
		for i, w := range weights {
			t.pmf[i] = w / total
		}
	}

	// Vose's algorithm: scale pmf by n, partition into "small" (<1) and
	// "large" (>=1) worklists, and pair them off.
	scaled := make([]float64, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range t.pmf {
		scaled[i] = p * float64(n)
		if scaled[i] < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		t.firstOf[s] = s
		t.entries[s] = aliasEntry{
			FirstPmf:   t.pmf[s],
			SecondPmf:  t.pmf[l],
			Ratio:      scaled[s],
			SecondElem: l,
		}

		scaled[l] = scaled[l] + scaled[s] - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// Leftover entries (numerical roundoff keeps them exactly on the line)
	// always keep their own index.
	for _, l := range large {
		t.firstOf[l] = l
		t.entries[l] = aliasEntry{FirstPmf: t.pmf[l], SecondPmf: t.pmf[l], Ratio: 1.0, SecondElem: l}
	}
	for _, s := range small {
		t.firstOf[s] = s
		t.entries[s] = aliasEntry{FirstPmf: t.pmf[s], SecondPmf: t.pmf[s], Ratio: 1.0, SecondElem: s}
	}

	return t
}

// Len returns the number of entries in the table.
func (t *AliasTable) Len() int { return len(t.entries) }

// PMF returns the exact probability mass of index i.
func (t *AliasTable) PMF(i int) float64 { return t.pmf[i] }

// Sample draws an index using two independent uniform randoms: u selects
// the bucket, uc decides whether to keep it or redirect via the alias.
// Returns the drawn index and its exact pmf.
func (t *AliasTable) Sample(u, uc float64) (int, float64) {
	n := len(t.entries)
	if n == 0 {
		return -1, 0
	}
	bucket := int(u * float64(n))
	if bucket >= n {
		bucket = n - 1
	}
	e := t.entries[bucket]
	if uc < e.Ratio {
		return t.firstOf[bucket], e.FirstPmf
	}
	return e.SecondElem, e.SecondPmf
}
