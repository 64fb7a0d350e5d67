package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Store    string `json:"store" yaml:"store"`       // Path or directory of the store
	Backend  string `json:"backend" yaml:"backend"`   // Store backend: localfs or badger
	LogLevel string `json:"loglevel" yaml:"loglevel"` // Logging verbosity
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setOdtoolsParams fills flags left unset from the config file and env.
func (c *CLIConfig) setOdtoolsParams(flags *flagsT) {
	if flags.root.store == "" {
		flags.root.store = c.Store
	}
	if flags.root.backend == "" {
		flags.root.backend = c.Backend
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the odtools config",
	Long: `Commands to manage the odtools CLI config.

Configuration for odtools is the common set of flags that are needed for most
commands and do not change across runs: the store location, the backend and
the logging verbosity.`,
}

var configShow = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		logStdOut("store: %s\nbackend: %s\nloglevel: %s\n",
			odtoolsFlags.root.store, odtoolsFlags.root.backend, odtoolsFlags.root.logLevel)
	},
}

func init() {
	configCmd.AddCommand(configShow)
	rootCmd.AddCommand(configCmd)
}
