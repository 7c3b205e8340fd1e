package scheduler

import (
	"image"
	"sync"

	"github.com/lumenray/tracer/pkg/core"
)

// TileSize is the fixed work-item granularity spec.md §4.7 calls for.
const TileSize = 32

// WorkItem is one tile-sized region of the image plane to render, with its
// own deterministic PRNG seed so re-running the same tile (e.g. a retry)
// reproduces identical samples, grounded on the teacher's renderer.Tile.
type WorkItem struct {
	ID     int
	Bounds image.Rectangle
	Seed   int64
}

// NewWorkItems tiles a width x height image into TileSize x TileSize
// (or smaller, at the right/bottom edges) work items in row-major order.
func NewWorkItems(width, height int) []WorkItem {
	var items []WorkItem
	id := 0
	for y0 := 0; y0 < height; y0 += TileSize {
		for x0 := 0; x0 < width; x0 += TileSize {
			x1 := min(x0+TileSize, width)
			y1 := min(y0+TileSize, height)
			items = append(items, WorkItem{
				ID:     id,
				Bounds: image.Rect(x0, y0, x1, y1),
				Seed:   int64(id) + 1, // avoid the all-zero seed
			})
			id++
		}
	}
	return items
}

// WorkQueue is a FIFO, mutex-protected queue of WorkItems, grounded on the
// teacher's WorkerPool.taskQueue (an unbuffered-semantics Go channel)
// reshaped into an explicit slice so TryGetWork can be non-blocking without
// a sentinel close/select dance.
type WorkQueue struct {
	mu    sync.Mutex
	items []WorkItem
	next  int
}

// NewWorkQueue seeds a queue with every tile of a width x height image.
func NewWorkQueue(width, height int) *WorkQueue {
	return &WorkQueue{items: NewWorkItems(width, height)}
}

// TryGetWork pops the next item without blocking, returning ok=false once
// the queue is drained.
func (q *WorkQueue) TryGetWork() (WorkItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next >= len(q.items) {
		return WorkItem{}, false
	}
	item := q.items[q.next]
	q.next++
	return item, true
}

// Remaining reports how many items have not yet been claimed.
func (q *WorkQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.next
}

// Total reports the total number of items the queue was seeded with.
func (q *WorkQueue) Total() int { return len(q.items) }

// samplerFor builds a tile-local deterministic sampler from a WorkItem's
// seed, matching the teacher's per-tile *rand.Rand.
func samplerFor(item WorkItem) *core.RandSampler {
	return core.NewRandSampler(item.Seed)
}
