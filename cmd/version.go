// =============================================================================
// docbatch - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   docbatch version
//
// OUTPUT:
//   docbatch
//   Version:    0.3.0
//   Build Date: 2026-10-19
//   Go Version: go1.24.0
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time with ldflags, see the mage
// Build target:
//   -X 'github.com/ginjaninja78/docbatch/cmd.Version=0.3.0'
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, and Go runtime version.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(out io.Writer) {
	fmt.Fprintln(out, "docbatch")
	fmt.Fprintf(out, "Version:    %s\n", Version)
	fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
}
