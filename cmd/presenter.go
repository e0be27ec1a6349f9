// =============================================================================
// docbatch - Console Presenter
// =============================================================================
//
// The presenter is the only consumer of a run's event channel and the only
// code that writes the activity log. A batch runs as two goroutines:
//
//   worker    runner.Run -> batch operation -> events
//   presenter events -> one tagged line per event -> stdout
//
// When the run ends the completion summary is printed, the optional summary
// file is written and the output folder is revealed on request.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/docbatch/internal/batch"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// eventBuffer lets the worker run slightly ahead of the console.
const eventBuffer = 16

// presenter renders progress events as activity-log lines.
type presenter struct {
	out io.Writer
	now func() time.Time
}

func newPresenter(out io.Writer) *presenter {
	return &presenter{out: out, now: time.Now}
}

// consume prints events until the channel is closed. Item status changes
// are printed only once the item has finished. It keeps draining after a
// write error so the worker is never blocked.
func (p *presenter) consume(events <-chan progress.Event) error {
	var firstErr error
	for e := range events {
		if e.Status != "" && !e.Status.Terminal() {
			continue
		}
		if _, err := fmt.Fprintln(p.out, p.line(e)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// line formats one event as "15:04:05 [TAG]  message".
func (p *presenter) line(e progress.Event) string {
	return fmt.Sprintf("%s %-7s %s", p.now().Format("15:04:05"), levelTag(e.Level), e)
}

func levelTag(level progress.Level) string {
	switch level {
	case progress.LevelSuccess:
		return "[OK]"
	case progress.LevelWarning:
		return "[WARN]"
	case progress.LevelError:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

// runOptions controls what happens after a run.
type runOptions struct {
	title        string
	writeSummary bool
	reveal       bool
}

// runJob executes job through the shared runner while the presenter drains
// its events, then reports the outcome.
//
// RETURNS:
//   - nil when the run completed, whatever its per-item outcomes.
//   - The setup error when nothing was processed.
//   - The unexpected error of a run that ended early, after its partial
//     summary has been printed.
func runJob(ctx context.Context, out io.Writer, job batch.Job, opts runOptions) error {
	events := make(chan progress.Event, eventBuffer)

	var (
		summary *batch.Summary
		runErr  error
		g       errgroup.Group
	)

	g.Go(func() error {
		summary, runErr = runner.Run(ctx, events, job)
		return nil
	})
	g.Go(func() error {
		return newPresenter(out).consume(events)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	if summary == nil {
		return runErr
	}

	printSummary(out, opts.title, summary)

	if opts.writeSummary {
		path, err := utils.WriteSummaryLog(summary.RunSummary(), summary.OutputDir)
		if err != nil {
			fmt.Fprintf(out, "Warning: %v\n", err)
		} else {
			fmt.Fprintf(out, "Summary written to %s\n", path)
		}
	}

	if opts.reveal {
		if err := utils.RevealFolder(summary.OutputDir); err != nil {
			fmt.Fprintf(out, "Warning: %v\n", err)
		}
	}

	return runErr
}

// printSummary prints the completion block.
func printSummary(out io.Writer, title string, summary *batch.Summary) {
	fmt.Fprintf(out, "\n=== %s Complete ===\n", title)
	fmt.Fprintf(out, "Completed:       %d of %d\n", summary.Succeeded(), summary.Total)
	fmt.Fprintf(out, "Output folder:   %s\n", summary.OutputDir)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))

	for _, r := range summary.Results {
		if r.Succeeded() {
			fmt.Fprintf(out, "  ✓ %s -> %s\n", r.Input, filepath.Base(r.Output))
			continue
		}
		fmt.Fprintf(out, "  ✗ %s: %s\n", r.Input, r.Message)
	}
}
