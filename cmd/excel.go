// =============================================================================
// docbatch - Excel Split Command
// =============================================================================
//
// COMMAND USAGE:
//   docbatch excel-split <file> [--format xlsx|csv|source] [--sheet NAME]
//   docbatch excel-split <file.xlsx> --list-sheets
//
// INPUTS:
//   .xlsx / .xlsm   first worksheet, or --sheet
//   .csv / .txt     csv_settings.delimiter and csv_settings.encoding
//   .tsv            tab-delimited
//
// One file per distinct (party, commodity group) pair is written to
// <dir(file)>/output as "<party>_<group>.<ext>".
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/docbatch/internal/batch"
	"github.com/ginjaninja78/docbatch/internal/progress"
	"github.com/ginjaninja78/docbatch/internal/validation"
	"github.com/ginjaninja78/docbatch/internal/xlsxparser"
)

var (
	excelFormat string
	excelSheet  string
	excelReveal bool
	excelList   bool
)

var excelSplitCmd = &cobra.Command{
	Use:   "excel-split <file>",
	Short: "Split an order spreadsheet into one file per party and commodity group",
	Long: `The excel-split command reads a workbook or delimited text file, finds the
party name column (header containing "party" and "name") and the commodity
grouping column (header containing "comm" and "group"), and writes the rows
of every distinct pair to their own file. Rows keep their original order.

Output formats:
  xlsx    Excel workbook (default)
  csv     comma-separated text
  source  same format as the input`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if excelList {
			return runListSheets(cmd.OutOrStdout(), args[0])
		}
		return runExcelSplit(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(excelSplitCmd)

	excelSplitCmd.Flags().StringVar(&excelFormat, "format", "", "Output format: xlsx, csv or source")
	excelSplitCmd.Flags().StringVar(&excelSheet, "sheet", "", "Worksheet to read (default: first sheet)")
	excelSplitCmd.Flags().BoolVar(&excelReveal, "reveal", false, "Open the output folder when done")
	excelSplitCmd.Flags().BoolVar(&excelList, "list-sheets", false, "List the worksheets of a workbook and exit")

	viper.BindPFlag("excel_split.output_format", excelSplitCmd.Flags().Lookup("format"))
	viper.BindPFlag("excel_split.sheet", excelSplitCmd.Flags().Lookup("sheet"))
}

func runExcelSplit(ctx context.Context, out io.Writer, src string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	opts := batch.SpreadsheetOptionsFrom(s.cfg)
	destDir := s.processor.FileManager().OutputDirFor(src)
	job := func(ctx context.Context, em progress.Emitter) (*batch.Summary, error) {
		return s.processor.SplitSpreadsheet(ctx, src, destDir, opts, em)
	}

	return runJob(ctx, out, job, runOptions{
		title:        "Excel Split",
		writeSummary: s.cfg.WriteSummary,
		reveal:       excelReveal,
	})
}

// runListSheets prints the worksheets of a workbook in tab order, marking the
// one a split reads by default.
func runListSheets(out io.Writer, src string) error {
	if err := validation.CheckFile(src); err != nil {
		return err
	}
	if !validation.HasExtension(src, ".xlsx", ".xlsm") {
		return fmt.Errorf("%s is not a workbook; only .xlsx and .xlsm files have sheets", src)
	}

	names, err := xlsxparser.SheetNames(src)
	if err != nil {
		return err
	}

	for i, name := range names {
		marker := ""
		if i == 0 {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%d. %s%s\n", i+1, name, marker)
	}
	return nil
}
