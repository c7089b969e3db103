package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inmidst/narrative-engine/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "narrative-engine",
	Short: "Build weighted career narratives",
	Long: `narrative-engine turns a career history into a narrative told through a
selected mask: it enriches the timeline, scores the available masks against
the requested view, and assembles weighted narrative blocks.

An external text generator can be configured to write a subset of the blocks;
without one, static template bodies are used.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		err = config.InitConfig(getConfigFile())
		if err != nil {
			return err
		}

		fmt.Println("Config file created. Edit it to point at your history file.")

		return err
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.narrative-engine/config.json)")
	rootCmd.AddCommand(initCmd)
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}
