package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var filterFlags = cli.FilterFlags{}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices in the catalog",
	Long: `List devices in the catalog. Filters and search can be combined to narrow
down the result.`,
	Args: cobra.NoArgs,
	Run:  executeList,
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&filterFlags.FilterType, "filter.type", "", "filter devices by one or more comma-separated device types")
	listCmd.Flags().StringVar(&filterFlags.FilterManufacturer, "filter.manufacturer", "", "filter devices by one or more comma-separated manufacturers")
	listCmd.Flags().StringVarP(&filterFlags.Search, "search", "s", "", "search devices by their index fields matching the search term")
}

func executeList(cmd *cobra.Command, args []string) {
	err := cli.List(context.Background(), filterFlags)
	if err != nil {
		os.Exit(1)
	}
}
