package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "icdcat",
	Short: "A catalog manager for IEC 61850 device descriptions",
	Long: `icdcat imports IEC 61850 device-description files (ICD/XML), extracts the
structural model of each device and maintains a searchable device catalog.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
