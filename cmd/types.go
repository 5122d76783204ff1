package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the device types present in the catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListDeviceTypes(context.Background()); err != nil {
			os.Exit(1)
		}
	},
}

var manufacturersCmd = &cobra.Command{
	Use:   "manufacturers",
	Short: "List the manufacturers present in the catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListManufacturers(context.Background()); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(typesCmd)
	RootCmd.AddCommand(manufacturersCmd)
}
