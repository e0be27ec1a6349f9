// =============================================================================
// docbatch - Split Command
// =============================================================================
//
// COMMAND USAGE:
//   docbatch split <file.pdf> [--reveal]
//
// Each page is saved to <dir(file)>/output as "<consignee>.pdf", or
// "Page_<n>.pdf" when the page has no consignee name.
//
// =============================================================================

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/docbatch/internal/batch"
	"github.com/ginjaninja78/docbatch/internal/progress"
)

var splitReveal bool

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Split a PDF into one file per page named after its consignee",
	Long: `The split command writes every page of a PDF to its own file in the
output folder next to the source. Pages are named after the consignee found
in their text; pages without one are saved as Page_<n>.pdf. The source file
is never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().BoolVar(&splitReveal, "reveal", false, "Open the output folder when done")
}

func runSplit(ctx context.Context, out io.Writer, src string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	destDir := s.processor.FileManager().OutputDirFor(src)
	job := func(ctx context.Context, em progress.Emitter) (*batch.Summary, error) {
		return s.processor.SplitPDF(ctx, src, destDir, em)
	}

	return runJob(ctx, out, job, runOptions{
		title:        "Split",
		writeSummary: s.cfg.WriteSummary,
		reveal:       splitReveal,
	})
}
