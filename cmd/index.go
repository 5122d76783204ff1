package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the catalog index from the record files",
	Long: `Rebuild the catalog index from the device record files on disk. Useful after
records have been copied into the catalog directory by hand, or to recover an index
that got out of sync.`,
	Args: cobra.NoArgs,
	Run:  executeIndex,
}

func init() {
	RootCmd.AddCommand(indexCmd)
}

func executeIndex(cmd *cobra.Command, args []string) {
	err := cli.Index(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
