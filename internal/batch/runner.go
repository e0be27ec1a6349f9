package batch

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ginjaninja78/docbatch/internal/progress"
)

// ErrBusy is returned when a run is requested while another is active.
var ErrBusy = errors.New("a batch is already running")

// Job is one batch operation bound to its inputs.
type Job func(ctx context.Context, em progress.Emitter) (*Summary, error)

// Runner allows at most one Job at a time.
type Runner struct {
	busy atomic.Bool
}

// Busy reports whether a job is running.
func (r *Runner) Busy() bool {
	return r.busy.Load()
}

// Run executes job on the calling goroutine, sending its events to events.
// events is always closed when Run returns, including when it returns
// ErrBusy, so a presenter ranging over it terminates.
func (r *Runner) Run(ctx context.Context, events chan<- progress.Event, job Job) (*Summary, error) {
	defer close(events)

	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)

	return job(ctx, progress.NewChannelEmitter(ctx, events))
}
