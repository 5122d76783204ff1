package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <device-type> <manufacturer>",
	Short: "List catalog entries for a device type and manufacturer",
	Long:  `List all imported versions for a given device type and manufacturer, newest first.`,
	Args:  cobra.ExactArgs(2),
	Run:   executeVersions,
}

func init() {
	RootCmd.AddCommand(versionsCmd)
}

func executeVersions(cmd *cobra.Command, args []string) {
	err := cli.ListVersions(context.Background(), args[0], args[1])
	if err != nil {
		os.Exit(1)
	}
}
