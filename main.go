// =============================================================================
// docbatch - Main Entry Point
// =============================================================================
//
// USAGE:
//   docbatch scan <folder>          - List the PDFs in a folder
//   docbatch rename <folder>        - Copy PDFs under their consignee name
//   docbatch split <file.pdf>       - One file per page, named the same way
//   docbatch excel-split <file>     - One file per party and commodity group
//   docbatch open <path>            - Open the output folder
//   docbatch config show|init       - Inspect or create docbatch.yaml
//   docbatch version                - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Cobra commands and the console presenter
//   - internal/      : Extraction, splitting and batch logic
//   - pkg/utils      : Output folders, file discovery, selection, summaries
//   - magefiles/     : Build targets (mage build, mage test)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/docbatch/cmd"
)

func main() {
	cmd.Execute()
}
