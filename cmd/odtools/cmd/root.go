package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "odtools",
	Short: "odtools manages experiment data in the open-data format",
	Long: `odtools organizes experiment data following the open-data conventions:
subjects, acquisition dates, numbered sessions and domains, with datasets
and attributes attached at any level.

Data lives in a store selected with --store and --backend. Every attribute
carries a definition, so a dataset remains understandable years later
without the code that produced it.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addStoreFlag(rootCmd)
	addBackendFlag(rootCmd)
	addLogLevel(rootCmd)
	addTemplateFlag(rootCmd)
	addMetricsFlag(rootCmd)
	addMetricsURLFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("backend", "localfs")
	viper.SetDefault("loglevel", "info")
	if os.Getenv("ODTOOLS_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("ODTOOLS_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.odtools")
		viper.AddConfigPath("/etc/odtools")
		viper.SetConfigName("odtools")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setOdtoolsParams(&odtoolsFlags)
}
