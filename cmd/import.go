package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file-or-directory>",
	Short: "Import device descriptions into the catalog",
	Long: `Import a single device-description file or a directory of files into the catalog.

Importing a directory will walk the directory tree recursively and attempt to import
all found .icd and .xml files, skipping paths matched by an ` + cli.IgnoreFile + ` file.
A failure to import one file does not stop the batch; per-file errors are reported
alongside the successes.`,
	Args: cobra.ExactArgs(1),
	Run:  executeImport,
}

func init() {
	RootCmd.AddCommand(importCmd)
}

func executeImport(cmd *cobra.Command, args []string) {
	_, err := cli.NewImportExecutor(time.Now).Import(context.Background(), args[0])
	if err != nil {
		cli.Stderrf("import failed")
		os.Exit(1)
	}
}
