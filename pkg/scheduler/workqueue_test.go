package scheduler

import "testing"

func TestNewWorkItems_CoversWholeImage(t *testing.T) {
	items := NewWorkItems(100, 65)

	covered := make([][]bool, 65)
	for i := range covered {
		covered[i] = make([]bool, 100)
	}

	for _, item := range items {
		for y := item.Bounds.Min.Y; y < item.Bounds.Max.Y; y++ {
			for x := item.Bounds.Min.X; x < item.Bounds.Max.X; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := range covered {
		for x := range covered[y] {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) never covered by any tile", x, y)
			}
		}
	}
}

func TestWorkQueue_FIFODrainsExactlyOnce(t *testing.T) {
	q := NewWorkQueue(64, 64)
	total := q.Total()

	seen := map[int]bool{}
	for {
		item, ok := q.TryGetWork()
		if !ok {
			break
		}
		if seen[item.ID] {
			t.Fatalf("item %d dispensed twice", item.ID)
		}
		seen[item.ID] = true
	}

	if len(seen) != total {
		t.Fatalf("drained %d items, want %d", len(seen), total)
	}
	if q.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after full drain, want 0", q.Remaining())
	}
}

func TestWorkQueue_TryGetWork_NonBlockingWhenEmpty(t *testing.T) {
	q := NewWorkQueue(1, 1)
	_, ok := q.TryGetWork()
	if !ok {
		t.Fatal("expected the single tile to be dispensed")
	}
	_, ok = q.TryGetWork()
	if ok {
		t.Fatal("expected TryGetWork to report empty without blocking")
	}
}
