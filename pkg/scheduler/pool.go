package scheduler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/integrator"
)

// Pool fans NumWorkers goroutines out over a WorkQueue, each one rendering
// whole tiles until the queue drains or ctx is cancelled. Grounded on the
// teacher's renderer.WorkerPool (channel-based task/result queues plus a
// raw sync.WaitGroup), replaced with golang.org/x/sync/errgroup so a
// worker's error (or the caller's context cancellation) propagates to every
// sibling goroutine without a hand-rolled stop channel (SPEC_FULL.md §4.7).
type Pool struct {
	Integrator integrator.Integrator
	Camera     core.Camera
	Config     core.SamplingConfig
	NumWorkers int
}

// NewPool builds a worker pool; NumWorkers<=0 defaults to runtime.NumCPU().
func NewPool(integ integrator.Integrator, camera core.Camera, config core.SamplingConfig, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{Integrator: integ, Camera: camera, Config: config, NumWorkers: numWorkers}
}

// Run drains queue into buf, rendering targetSamples new samples per pixel.
// It blocks until the queue is empty, ctx is cancelled, or a worker errors.
func (p *Pool) Run(ctx context.Context, queue *WorkQueue, buf *SampleBuffer, targetSamples int) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < p.NumWorkers; i++ {
		g.Go(func() error {
			return p.workerLoop(ctx, queue, buf, targetSamples)
		})
	}

	return g.Wait()
}

func (p *Pool) workerLoop(ctx context.Context, queue *WorkQueue, buf *SampleBuffer, targetSamples int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		item, ok := queue.TryGetWork()
		if !ok {
			return nil
		}

		if err := p.renderTile(ctx, item, buf, targetSamples); err != nil {
			return err
		}
	}
}

// renderTile renders targetSamples AA samples at every pixel in item.Bounds,
// decomposing the sample count into stratified-grid squares per spec.md
// §4.6.3 (core.DecomposeSquares/StratifiedGridSamples) and checking ctx
// between rows so cancellation lands within roughly one tile's latency.
func (p *Pool) renderTile(ctx context.Context, item WorkItem, buf *SampleBuffer, targetSamples int) error {
	sampler := samplerFor(item)
	squares := core.DecomposeSquares(targetSamples)

	for y := item.Bounds.Min.Y; y < item.Bounds.Max.Y; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for x := item.Bounds.Min.X; x < item.Bounds.Max.X; x++ {
			p.renderPixel(x, y, sampler, squares, buf)
		}
	}
	return nil
}

func (p *Pool) renderPixel(x, y int, sampler core.Sampler, squares []int, buf *SampleBuffer) {
	width, height := float64(p.Config.Width), float64(p.Config.Height)

	for _, side := range squares {
		jitters := core.StratifiedGridSamples(side, sampler)
		for _, j := range jitters {
			u := (float64(x) + j.X) / width
			v := (float64(y) + j.Y) / height

			ray := p.Camera.GenerateRay(u, v, sampler)
			color := p.Integrator.TraceRay(ray, sampler)
			buf.UpdatePixel(x, y, color)
		}
	}
}
