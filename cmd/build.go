package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/druskus20/bageri/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site for production",
	Long: `Load the configuration, run the pre-build hooks, render every
configured page and write the results to the output directory.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	logger.Info("building for production")

	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	builder := build.New(cfg, logger, newHookRunner(logger))
	if err := builder.Build(ctx); err != nil {
		return err
	}

	fmt.Printf("Build complete! Static files are in the %s directory.\n", cfg.OutputDir)
	return nil
}
