package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <identity>",
	Short: "Print the full extracted record of a device",
	Long: `Print the full extracted record of a device as JSON. The data type templates
section is omitted by default because of its size; add --types to include it.`,
	Args: cobra.ExactArgs(1),
	Run:  executeShow,
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolP("types", "t", false, "include the resolved data type templates in the output")
}

func executeShow(cmd *cobra.Command, args []string) {
	includeTypes, _ := cmd.Flags().GetBool("types")
	err := cli.Show(context.Background(), args[0], includeTypes)
	if err != nil {
		os.Exit(1)
	}
}
