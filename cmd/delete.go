package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/substation-tools/icdcat/internal/app/cli"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <identity>",
	Short: "Delete a device record by identity",
	Long: `Delete a device record by identity. Normally the catalog is only ever replaced
by re-importing; deletion exists for records imported by mistake. Therefore, it is
mandatory to provide the flag --force=true to delete a record.`,
	Args: cobra.ExactArgs(1),
	Run:  executeDelete,
}

func init() {
	RootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().String("force", "", "force the deletion") // intentionally a string flag, not boolean, so that the user has to make that much extra effort to type
}

func executeDelete(cmd *cobra.Command, args []string) {
	force := cmd.Flag("force").Value.String()
	if force != "true" {
		cli.Stderrf("Cannot delete a record unless --force is set to \"true\"")
		os.Exit(1)
	}
	err := cli.Delete(context.Background(), args[0])
	if err != nil {
		cli.Stderrf("delete failed")
		os.Exit(1)
	}
}
