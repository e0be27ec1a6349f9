// =============================================================================
// docbatch - Scan Command
// =============================================================================
//
// COMMAND USAGE:
//   docbatch scan <folder>
//
// OUTPUT:
//   No.  File          Status
//   1    a.pdf         Ready
//   2    invoice.PDF   Ready
//
// The numbers are the ones accepted by "docbatch rename --select".
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/pkg/utils"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "List the PDF files in a folder",
	Long: `List the PDF files directly inside a folder, sorted by name. Subfolders
are not searched. Each file is shown with the number used by
"docbatch rename --select".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(out io.Writer, folder string) error {
	files, err := discover(folder)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintf(out, "No PDF files found in %s\n", folder)
		return nil
	}

	printFileList(out, files, nil)
	fmt.Fprintf(out, "\nFound %d PDF file(s)\n", len(files))
	return nil
}

// discover validates folder and lists its PDFs.
func discover(folder string) ([]string, error) {
	if err := validation.CheckDir(folder); err != nil {
		return nil, err
	}
	return utils.DiscoverPDFs(folder)
}

// printFileList prints the numbered file table. When selection is not nil,
// unselected files are shown as skipped.
func printFileList(out io.Writer, files []string, selection *utils.Selection) {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "No.\tFile\tStatus")
	for i, file := range files {
		status := string(progress.StatusReady)
		if selection != nil && !selection.IsSelected(i) {
			status = "Skipped"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, filepath.Base(file), status)
	}
	tw.Flush()
}
