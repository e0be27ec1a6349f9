package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// RenamePDFs copies each input PDF into destDir under the consignee name
// found in its text. Inputs are processed in the given order, which fixes the
// " - n" suffixes of repeated names. Sources are never modified.
func (p *Processor) RenamePDFs(ctx context.Context, inputs []string, destDir string, em progress.Emitter) (*Summary, error) {
	if len(inputs) == 0 {
		return nil, &validation.ValidationError{
			Field:   "selection",
			Message: "no PDF files selected",
			Err:     validation.ErrInvalidPath,
		}
	}
	if err := utils.EnsureDir(destDir); err != nil {
		return nil, err
	}

	summary := newSummary(OpRename, filepath.Dir(inputs[0]), destDir)
	summary.Total = len(inputs)
	counter := NewNameCounter()

	log := runLogger(p.logger, summary.RunID)

	progress.Info(em, "Renaming %d file(s) into %s", len(inputs), destDir)
	log.Info("rename started", "files", len(inputs), "output", destDir)

	for _, input := range inputs {
		if ctx.Err() != nil {
			return interrupted(ctx, em, summary)
		}

		item := filepath.Base(input)
		progress.Item(em, item, progress.StatusProcessing, progress.LevelInfo, "Processing", nil)

		summary.record(em, p.renameOne(log, input, item, destDir, counter))
	}

	log.Info("rename finished", "succeeded", summary.Succeeded(), "total", summary.Total)
	return summary.finish(em), nil
}

// renameOne handles a single input file.
func (p *Processor) renameOne(log Logger, input, item, destDir string, counter *NameCounter) Result {
	pages, err := p.extractor.PageTexts(input)
	if err != nil {
		log.Error("text extraction failed", "file", input, "error", err)
		return Result{Input: item, Status: progress.StatusError, Message: "Could not read PDF text", Err: err}
	}

	name, ok := p.names.Extract(strings.Join(pages, "\n"))
	if !ok {
		log.Warn("no consignee name found", "file", input)
		return Result{Input: item, Status: progress.StatusFailed, Message: "No consignee name found"}
	}

	fileName := counter.Next(name)
	dst := filepath.Join(destDir, fileName)
	if err := utils.CopyFile(input, dst); err != nil {
		log.Error("copy failed", "file", input, "dest", dst, "error", err)
		return Result{Input: item, Status: progress.StatusError, Message: fmt.Sprintf("Could not write %s", fileName), Err: err}
	}

	log.Debug("renamed", "file", input, "dest", dst)
	return Result{Input: item, Output: dst, Status: progress.StatusDone, Message: fmt.Sprintf("Saved as %s", fileName)}
}
