// =============================================================================
// docbatch - Rename Command
// =============================================================================
//
// COMMAND USAGE:
//   docbatch rename <folder> [flags]
//
// SELECTION:
//   Every PDF in the folder is selected unless --all, --toggle-all,
//   --select or --pattern is given. The flags are applied in this order:
//     1. --all              select every file
//     2. --pattern <glob>   add the files whose name matches
//     3. --toggle-all       clear the selection, or select every file
//                           when nothing is selected yet
//     4. --select 1,3       toggle the numbered files (see "docbatch scan")
//     5. --invert           flip the whole selection
//
// Selected files are copied into <folder>/output under their consignee name.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/docbatch/internal/batch"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

// selectionFlags are the rename selection options.
type selectionFlags struct {
	all       bool
	pattern   string
	toggleAll bool
	numbers   []int
	invert    bool
}

var (
	renameSelection selectionFlags
	renameReveal    bool
	renameDryRun    bool
)

var renameCmd = &cobra.Command{
	Use:   "rename <folder>",
	Short: "Copy PDFs into an output folder named after their consignee",
	Long: `The rename command reads the text of each selected PDF, finds the line
after the "Consignee (Ship to)" label and copies the file into
<folder>/output under that name. Repeated names get " - 2", " - 3", ...
in processing order. Files without a consignee name are reported and
skipped. Source files are never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().BoolVar(&renameSelection.all, "all", false, "Select every file")
	renameCmd.Flags().StringVar(&renameSelection.pattern, "pattern", "", "Select files whose name matches a glob, e.g. 'INV-*.pdf'")
	renameCmd.Flags().BoolVar(&renameSelection.toggleAll, "toggle-all", false, "Clear the selection, or select everything when nothing is selected")
	renameCmd.Flags().IntSliceVar(&renameSelection.numbers, "select", nil, "Toggle files by number as listed by scan, e.g. 1,3")
	renameCmd.Flags().BoolVar(&renameSelection.invert, "invert", false, "Invert the selection")
	renameCmd.Flags().BoolVar(&renameReveal, "reveal", false, "Open the output folder when done")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show the new names without writing files")
}

func runRename(ctx context.Context, out io.Writer, folder string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	files, err := discover(folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", folder)
	}

	selection, err := renameSelection.apply(files)
	if err != nil {
		return err
	}

	printFileList(out, files, selection)
	fmt.Fprintf(out, "\n%d of %d file(s) selected\n\n", selection.Count(), selection.Len())

	inputs := selection.Selected()

	if renameDryRun {
		printPreviews(out, s.processor.PreviewRenames(inputs))
		return nil
	}

	destDir := s.processor.FileManager().OutputDirFor(folder)
	job := func(ctx context.Context, em progress.Emitter) (*batch.Summary, error) {
		return s.processor.RenamePDFs(ctx, inputs, destDir, em)
	}

	return runJob(ctx, out, job, runOptions{
		title:        "Rename",
		writeSummary: s.cfg.WriteSummary,
		reveal:       renameReveal,
	})
}

// apply builds the selection over files.
func (f selectionFlags) apply(files []string) (*utils.Selection, error) {
	selection := utils.NewSelection(files)

	if !f.all && !f.toggleAll && f.pattern == "" && len(f.numbers) == 0 {
		selection.SelectAll()
	}
	if f.all {
		selection.SelectAll()
	}

	if f.pattern != "" {
		n, err := selection.SelectMatching(f.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid --pattern %q: %w", f.pattern, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("no file matches --pattern %q", f.pattern)
		}
	}

	if f.toggleAll {
		selection.ToggleAll()
	}

	for _, number := range f.numbers {
		if !selection.Toggle(number - 1) {
			return nil, fmt.Errorf("no file number %d (folder has %d)", number, selection.Len())
		}
	}

	if f.invert {
		selection.Invert()
	}

	if selection.Count() == 0 {
		return nil, fmt.Errorf("no PDF files selected")
	}
	return selection, nil
}

// printPreviews prints the dry-run plan.
func printPreviews(out io.Writer, previews []batch.Preview) {
	fmt.Fprintln(out, "=== Dry Run ===")
	for _, p := range previews {
		switch {
		case p.Err != nil:
			fmt.Fprintf(out, "  ✗ %s: could not read PDF text: %v\n", p.Input, p.Err)
		case p.FileName == "":
			fmt.Fprintf(out, "  ✗ %s: no consignee name found\n", p.Input)
		default:
			fmt.Fprintf(out, "  ✓ %s -> %s\n", p.Input, p.FileName)
		}
	}
}
