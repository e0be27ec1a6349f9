package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/docbatch/pkg/utils"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open the output folder of a folder or file in the file manager",
	Long: `Open the output folder that belongs to a scanned folder (<folder>/output)
or to a source file (<dir(file)>/output) in the platform file manager.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(out io.Writer, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := utils.NewFileManager(cfg.OutputDirName).OutputDirFor(path)
	if !utils.FileExists(dir) {
		fmt.Fprintf(out, "Output folder does not exist yet: %s\n", dir)
		return nil
	}

	if err := utils.RevealFolder(dir); err != nil {
		return err
	}
	fmt.Fprintf(out, "Opened %s\n", dir)
	return nil
}
