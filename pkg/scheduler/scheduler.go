package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenray/tracer/pkg/core"
	"github.com/lumenray/tracer/pkg/integrator"
)

// State is one node of the render lifecycle state machine spec.md §4.7
// names: INIT -> READY -> (VISUALIZE | RENDERING) -> DONE -> READY.
type State int

const (
	StateInit State = iota
	StateReady
	StateVisualize
	StateRendering
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateReady:
		return "READY"
	case StateVisualize:
		return "VISUALIZE"
	case StateRendering:
		return "RENDERING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

var errNotConfigured = errors.New("scheduler: scene, camera, or framebuffer not configured")

// Scheduler drives the tile work queue and worker pool through the render
// lifecycle, grounded on the teacher's renderer.ProgressiveRaytracer, which
// this rework splits into an explicit State machine (rather than an
// implicit pass-counter loop) plus the separately-testable Pool/WorkQueue
// types above.
type Scheduler struct {
	state      State
	Integrator integrator.Integrator
	Camera     core.Camera
	Config     core.SamplingConfig
	NumWorkers int
	Logger     core.Logger // optional; progress messages are skipped if nil

	Buffer *SampleBuffer
}

// NewScheduler constructs a Scheduler in StateInit.
func NewScheduler(integ integrator.Integrator, camera core.Camera, config core.SamplingConfig, numWorkers int) *Scheduler {
	return &Scheduler{
		state:      StateInit,
		Integrator: integ,
		Camera:     camera,
		Config:     config,
		NumWorkers: numWorkers,
	}
}

// logf routes a progress message through Logger if one is configured,
// matching the teacher's renderer.ProgressiveRaytracer pass/worker
// messages without requiring every caller to wire a logger.
func (s *Scheduler) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func (s *Scheduler) State() State { return s.state }

// ready transitions INIT -> READY once the camera/framebuffer guard
// passes, per spec.md §4.7's transition condition. Integrator is checked
// separately (by Start/Visualize) rather than here, so Prepare can bring
// up the Buffer before a splat-based Integrator (BDPT) that needs to
// close over it has been constructed.
func (s *Scheduler) ready() error {
	if s.Camera == nil || s.Config.Width <= 0 || s.Config.Height <= 0 {
		return errNotConfigured
	}
	s.Buffer = NewSampleBuffer(s.Config.Width, s.Config.Height)
	s.state = StateReady
	return nil
}

// Prepare validates Camera/Config and allocates Buffer, transitioning
// INIT -> READY without requiring Integrator yet. An integrator whose
// constructor needs a pixel-splat callback (integrator.NewBDPT) can be
// built against Buffer.UpdatePixelAdd after calling Prepare and before
// assigning the result to Integrator and calling Start.
func (s *Scheduler) Prepare() error {
	if s.state != StateInit {
		return fmt.Errorf("scheduler prepare: invalid state %s, want %s", s.state, StateInit)
	}
	if err := s.ready(); err != nil {
		return fmt.Errorf("scheduler prepare: %w", err)
	}
	return nil
}

// Start runs the full READY -> RENDERING -> DONE cycle to completion,
// returning an error (never panicking) if the scheduler is not fully
// configured, per spec.md §7's explicit error-return convention.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.state == StateInit {
		if err := s.ready(); err != nil {
			return fmt.Errorf("scheduler start: %w", err)
		}
	}
	if s.state != StateReady {
		return fmt.Errorf("scheduler start: invalid state %s, want %s", s.state, StateReady)
	}
	if s.Integrator == nil {
		return fmt.Errorf("scheduler start: integrator not configured")
	}

	s.state = StateRendering
	s.logf("Starting render: %dx%d, %d samples per pixel, %d workers\n",
		s.Config.Width, s.Config.Height, s.Config.SamplesPerPixel, s.NumWorkers)
	pool := NewPool(s.Integrator, s.Camera, s.Config, s.NumWorkers)
	queue := NewWorkQueue(s.Config.Width, s.Config.Height)

	if err := pool.Run(ctx, queue, s.Buffer, s.Config.SamplesPerPixel); err != nil {
		s.state = StateReady
		s.logf("Render cancelled: %v\n", err)
		return err
	}

	s.state = StateDone
	s.logf("Render complete\n")
	return nil
}

// Visualize runs a single low-sample pass for a quick preview, transitioning
// READY -> VISUALIZE -> READY, matching spec.md §4.7's visualize path
// (a preview render that does not advance toward DONE).
func (s *Scheduler) Visualize(ctx context.Context, previewSamples int) (*FrameBuffer, error) {
	if s.state == StateInit {
		if err := s.ready(); err != nil {
			return nil, fmt.Errorf("scheduler visualize: %w", err)
		}
	}
	if s.state != StateReady {
		return nil, fmt.Errorf("scheduler visualize: invalid state %s, want %s", s.state, StateReady)
	}
	if s.Integrator == nil {
		return nil, fmt.Errorf("scheduler visualize: integrator not configured")
	}

	s.state = StateVisualize
	pool := NewPool(s.Integrator, s.Camera, s.Config, s.NumWorkers)
	queue := NewWorkQueue(s.Config.Width, s.Config.Height)
	previewBuf := NewSampleBuffer(s.Config.Width, s.Config.Height)

	if err := pool.Run(ctx, queue, previewBuf, previewSamples); err != nil {
		s.state = StateReady
		return nil, err
	}

	s.state = StateReady
	return Resolve(previewBuf), nil
}

// Reset transitions DONE -> READY, allowing a new Start call to re-render
// (e.g. after a scene or config change) without reconstructing the
// Scheduler, per spec.md §4.7.
func (s *Scheduler) Reset() error {
	if s.state != StateDone {
		return fmt.Errorf("scheduler reset: invalid state %s, want %s", s.state, StateDone)
	}
	s.state = StateReady
	return nil
}

// FrameBuffer resolves the current SampleBuffer into a gamma-encoded
// FrameBuffer; valid after Start returns without error.
func (s *Scheduler) FrameBuffer() *FrameBuffer {
	if s.Buffer == nil {
		return nil
	}
	return Resolve(s.Buffer)
}
