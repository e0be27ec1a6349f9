package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// SplitPDF splits src into single pages and saves each page in destDir under
// its consignee name, or Page_<n>.pdf when none is found. Pages are handled
// in source order and share one NameCounter.
//
// Pages are first written to a uniquely named scratch folder inside destDir,
// which is removed when the run ends.
func (p *Processor) SplitPDF(ctx context.Context, src, destDir string, em progress.Emitter) (*Summary, error) {
	if p.splitter == nil {
		return nil, fmt.Errorf("no page splitter configured")
	}
	if err := validation.CheckFile(src, ".pdf"); err != nil {
		return nil, err
	}
	if err := utils.EnsureDir(destDir); err != nil {
		return nil, err
	}

	summary := newSummary(OpSplit, src, destDir)
	log := runLogger(p.logger, summary.RunID)

	scratch := filepath.Join(destDir, ".split-"+uuid.NewString())
	if err := utils.EnsureDir(scratch); err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warn("could not remove scratch folder", "dir", scratch, "error", err)
		}
	}()

	progress.Info(em, "Splitting %s", filepath.Base(src))
	log.Info("split started", "source", src, "output", destDir)

	pages, err := p.splitter.Split(src, scratch)
	if err != nil {
		log.Error("split failed", "source", src, "error", err)
		em.Emit(progress.Event{Item: filepath.Base(src), Status: progress.StatusError, Level: progress.LevelError, Message: "Could not split PDF", Err: err})
		return summary.finish(em), fmt.Errorf("failed to split %s: %w", filepath.Base(src), err)
	}

	summary.Total = len(pages)
	progress.Info(em, "Split into %d page(s)", len(pages))

	counter := NewNameCounter()
	for i, page := range pages {
		if ctx.Err() != nil {
			return interrupted(ctx, em, summary)
		}

		item := fmt.Sprintf("Page %d", i+1)
		progress.Item(em, item, progress.StatusProcessing, progress.LevelInfo, "Processing", nil)

		summary.record(em, p.savePage(log, page, i+1, item, destDir, counter))
	}

	log.Info("split finished", "succeeded", summary.Succeeded(), "total", summary.Total)
	return summary.finish(em), nil
}

// savePage names and moves one split page. A page whose text cannot be read
// is treated as unnamed.
func (p *Processor) savePage(log Logger, page string, pageNumber int, item, destDir string, counter *NameCounter) Result {
	var (
		name      string
		ok        bool
		readError error
	)

	texts, err := p.extractor.PageTexts(page)
	if err != nil {
		readError = err
		log.Warn("page text extraction failed", "page", pageNumber, "error", err)
	} else {
		name, ok = p.names.Extract(strings.Join(texts, "\n"))
	}

	fileName := PageFallbackName(pageNumber)
	if ok {
		fileName = counter.Next(name)
	}
	dst := filepath.Join(destDir, fileName)

	if err := utils.MoveFile(page, dst); err != nil {
		log.Error("could not save page", "page", pageNumber, "dest", dst, "error", err)
		if rmErr := os.Remove(page); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("could not discard page", "page", pageNumber, "error", rmErr)
		}
		return Result{Input: item, Status: progress.StatusError, Message: fmt.Sprintf("Could not write %s", fileName), Err: err}
	}

	if !ok {
		log.Warn("no consignee name found", "page", pageNumber, "dest", dst)
		return Result{
			Input:   item,
			Output:  dst,
			Status:  progress.StatusWarning,
			Message: fmt.Sprintf("No consignee name found, saved as %s", fileName),
			Err:     readError,
		}
	}

	log.Debug("page saved", "page", pageNumber, "dest", dst)
	return Result{Input: item, Output: dst, Status: progress.StatusDone, Message: fmt.Sprintf("Saved as %s", fileName)}
}
