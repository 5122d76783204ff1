package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/substation-tools/icdcat/internal/app/cli"
	"github.com/substation-tools/icdcat/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show icdcat version information",
	Long:  `Show icdcat version information`,
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("icdcat version %s\n", cli.CliVersion)
		cf := viper.ConfigFileUsed()
		if cf == "" {
			cf = fmt.Sprintf("No config.json file found in '%s'. Using default settings", config.DefaultConfigDir)
		}
		fmt.Printf("Configuration file used: %s\n", cf)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
