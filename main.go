package main

import (
	"github.com/substation-tools/icdcat/cmd"
	"github.com/substation-tools/icdcat/internal"
	"github.com/substation-tools/icdcat/internal/config"
)

func init() {
	config.InitConfig()
	config.InitViper()
	internal.InitLogging()
}
func main() {
	cmd.Execute()
}
