package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	KeyLog      = "log"
	KeyLogLevel = "logLevel"
	KeyDataDir  = "dataDir"
	EnvPrefix   = "icdcat"
)

var HomeDir string
var DefaultConfigDir string

func InitConfig() {
	var err error
	HomeDir, err = os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultConfigDir = filepath.Join(HomeDir, ".icd-catalog")
}

func InitViper() {
	viper.SetDefault(KeyLog, false)
	viper.SetDefault(KeyLogLevel, "INFO")
	viper.SetDefault(KeyDataDir, filepath.Join(DefaultConfigDir, "data"))

	viper.SetConfigType("json")
	viper.SetConfigName("config")
	viper.AddConfigPath(DefaultConfigDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; do nothing and rely on defaults
		} else {
			panic("cannot read config: " + err.Error())
		}
	}
	// set prefix "icdcat" for environment variables
	// the environment variables then have to match pattern "icdcat_<viper variable>", lower or uppercase
	viper.SetEnvPrefix(EnvPrefix)

	_ = viper.BindEnv(KeyLog)      // env variable name = ICDCAT_LOG
	_ = viper.BindEnv(KeyLogLevel) // env variable name = ICDCAT_LOGLEVEL
	_ = viper.BindEnv(KeyDataDir)  // env variable name = ICDCAT_DATADIR
}
