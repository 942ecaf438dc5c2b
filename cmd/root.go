// Package cmd provides the bageri command-line interface.
//
// Flags can also be set through BAGERI_-prefixed environment variables
// (BAGERI_CONFIG, BAGERI_NO_COLOR); command-line flags take precedence.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/druskus20/bageri/internal/config"
	"github.com/druskus20/bageri/internal/hooks"
	"github.com/druskus20/bageri/internal/logging"
)

var verbosity int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bageri",
	Short: "A static site build orchestrator",
	Long: `Bageri renders SPA shells and static HTML pages from a declarative
configuration (bageri.json5), runs pre-build hooks, and in dev mode watches
the source tree to rebuild and live-reload on change.

Quick start:
  bageri dev        Start the development server
  bageri build      Build for production
  bageri clean      Remove build artifacts`,
	SilenceUsage: true,
}

// Execute runs the CLI. Errors are reported by cobra; the caller maps them
// to the process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	viper.SetEnvPrefix("BAGERI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// newLogger builds the logger shared by every component, configured from the
// global flags. There is deliberately no package-level logger state.
func newLogger() *logging.Logger {
	return logging.New(&logging.Options{
		Level:   logging.VerbosityLevel(verbosity),
		NoColor: viper.GetBool("no-color"),
		Output:  os.Stderr,
	})
}

func loadConfig(logger *logging.Logger) (*config.Config, error) {
	return config.Load(viper.GetString("config"), logger)
}

func newHookRunner(logger *logging.Logger) *hooks.Runner {
	return hooks.NewRunner(logger, os.Stderr, viper.GetBool("no-color"))
}
