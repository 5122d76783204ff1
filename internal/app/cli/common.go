// Package cli contains implementations of CLI commands. The command code is
// supposed to contain only logic specific to the CLI and delegate
// complex/reusable stuff to code in /internal/commands and /internal/catalog.
// Commands in cli package should print results in human-readable format to
// stdout.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/substation-tools/icdcat/internal/catalog"
	"github.com/substation-tools/icdcat/internal/config"
)

var CliVersion = "n/a"

// Stderrf prints a message to os.Stderr, followed by newline
func Stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	_, _ = fmt.Fprintln(os.Stderr)
}

func openCatalog() (*catalog.File, error) {
	root := viper.GetString(config.KeyDataDir)
	c, err := catalog.NewFile(root)
	if err != nil {
		Stderrf("Could not initialize catalog at %s: %v\ncheck config", root, err)
		return nil, err
	}
	return c, nil
}
