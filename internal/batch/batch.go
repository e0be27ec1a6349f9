// =============================================================================
// docbatch - Batch Module
// =============================================================================
//
// This module contains the three batch operations. Each runs on a single
// worker goroutine, reports every state change as a progress.Event and
// returns a Summary.
//
//   RenamePDFs        selected PDFs  -> copies named after their consignee
//   SplitPDF          one PDF        -> one file per page, named the same way
//   SplitSpreadsheet  one table      -> one file per (party, group) pair
//
// ERROR HANDLING:
//   - Setup errors (bad input, missing column, unwritable output) are
//     returned before any item is touched, with a nil Summary
//   - Per-item errors mark the item Failed or Error and the run continues
//   - Unexpected errors end the run early and return the partial Summary
//     together with the error
//
// =============================================================================

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/docbatch/internal/consignee"
	"github.com/ginjaninja78/docbatch/internal/logging"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// Operation names a batch mode.
type Operation string

const (
	OpRename     Operation = "rename"
	OpSplit      Operation = "split"
	OpExcelSplit Operation = "excel-split"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Logger is the diagnostic logger. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TextExtractor returns the text of every page of a PDF.
type TextExtractor interface {
	PageTexts(path string) ([]string, error)
}

// PageSplitter writes one PDF per page of src into dir and returns the page
// files in page order.
type PageSplitter interface {
	Split(src, dir string) ([]string, error)
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of one item: a source file, a page or a group.
type Result struct {
	// Input identifies the item.
	Input string

	// Output is the written file. Empty if nothing was written.
	Output string

	// Status is the item's final status.
	Status progress.Status

	// Message describes the outcome.
	Message string

	// Err is the cause for Failed and Error items.
	Err error
}

// Succeeded reports whether the item counts toward the success total.
func (r Result) Succeeded() bool {
	return r.Status == progress.StatusDone
}

// Summary is the outcome of one run.
type Summary struct {
	RunID     string
	Operation Operation
	Source    string
	OutputDir string
	StartTime time.Time
	EndTime   time.Time

	// Total is the number of items the run set out to process: selected
	// files, pages or distinct groups.
	Total int

	Results []Result
}

// Succeeded returns the number of items that completed with Done.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// String renders the completion line, e.g. "2 of 3 succeeded".
func (s *Summary) String() string {
	return fmt.Sprintf("%d of %d succeeded", s.Succeeded(), s.Total)
}

// RunSummary converts the summary for utils.WriteSummaryLog.
func (s *Summary) RunSummary() utils.RunSummary {
	items := make([]utils.ItemOutcome, len(s.Results))
	for i, r := range s.Results {
		msg := r.Message
		if r.Err != nil {
			msg = fmt.Sprintf("%s: %v", msg, r.Err)
		}
		items[i] = utils.ItemOutcome{
			Input:   r.Input,
			Output:  r.Output,
			Status:  string(r.Status),
			Message: msg,
		}
	}
	return utils.RunSummary{
		RunID:     s.RunID,
		Operation: string(s.Operation),
		Source:    s.Source,
		OutputDir: s.OutputDir,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Succeeded: s.Succeeded(),
		Total:     s.Total,
		Items:     items,
	}
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs batch operations with a fixed set of collaborators.
type Processor struct {
	extractor TextExtractor
	splitter  PageSplitter
	names     *consignee.Extractor
	files     *utils.FileManager
	logger    Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithNameExtractor replaces the default consignee extractor.
func WithNameExtractor(e *consignee.Extractor) Option {
	return func(p *Processor) { p.names = e }
}

// WithFileManager sets how output folders are placed.
func WithFileManager(fm *utils.FileManager) Option {
	return func(p *Processor) { p.files = fm }
}

// New creates a Processor. splitter may be nil when SplitPDF is not used.
func New(extractor TextExtractor, splitter PageSplitter, opts ...Option) *Processor {
	p := &Processor{
		extractor: extractor,
		splitter:  splitter,
		names:     consignee.Default(),
		files:     utils.NewFileManager(""),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileManager returns the processor's file manager.
func (p *Processor) FileManager() *utils.FileManager {
	return p.files
}

// newSummary starts a summary for a run.
func newSummary(op Operation, source, outputDir string) *Summary {
	return &Summary{
		RunID:     utils.NewRunID(),
		Operation: op,
		Source:    source,
		OutputDir: outputDir,
		StartTime: time.Now(),
	}
}

// record appends r to the summary and emits its terminal event.
func (s *Summary) record(em progress.Emitter, r Result) {
	s.Results = append(s.Results, r)
	progress.Item(em, r.Input, r.Status, levelFor(r.Status), r.Message, r.Err)
}

// finish stamps the end time and emits the completion line.
func (s *Summary) finish(em progress.Emitter) *Summary {
	s.EndTime = time.Now()
	level := progress.LevelSuccess
	if s.Succeeded() < s.Total {
		level = progress.LevelWarning
	}
	em.Emit(progress.Event{Level: level, Message: fmt.Sprintf("Finished: %s", s)})
	return s
}

// interrupted reports a context cancelled between items.
func interrupted(ctx context.Context, em progress.Emitter, s *Summary) (*Summary, error) {
	err := ctx.Err()
	em.Emit(progress.Event{Level: progress.LevelError, Message: "Run interrupted", Err: err})
	return s.finish(em), fmt.Errorf("run interrupted: %w", err)
}

// runLogger tags every line of a run with its ID when the logger is slog.
func runLogger(l Logger, runID string) Logger {
	if sl, ok := l.(*slog.Logger); ok {
		return sl.With("runId", runID)
	}
	return l
}

func levelFor(status progress.Status) progress.Level {
	switch status {
	case progress.StatusDone:
		return progress.LevelSuccess
	case progress.StatusFailed, progress.StatusWarning:
		return progress.LevelWarning
	case progress.StatusError:
		return progress.LevelError
	default:
		return progress.LevelInfo
	}
}
