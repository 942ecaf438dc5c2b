package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/druskus20/bageri/internal/build"
	"github.com/druskus20/bageri/internal/logging"
	"github.com/druskus20/bageri/internal/server"
	"github.com/druskus20/bageri/internal/watcher"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Start the development server",
	Long: `Build once, then watch the configured patterns for changes,
rebuilding after each quiet period and serving the output directory on
http://` + server.DefaultAddr + ` with live reload.`,
	RunE: runDev,
}

func init() {
	rootCmd.AddCommand(devCmd)
}

func runDev(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	logger.Info("starting development server")

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

	w, err := watcher.New(cfg.WatchPatterns, logger)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer w.Close()
	w.Start(ctx)
	logger.Info("watching for changes", "patterns", cfg.WatchPatterns)

	srv := server.New(cfg.OutputDir, true, logger)

	// A single goroutine consumes rebuild signals, so rebuilds never run
	// concurrently with each other. A failed rebuild is logged and the
	// watcher keeps running; only shutdown ends the loop.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Rebuilds():
				logger.Info("files changed, rebuilding")
				if err := rebuild(ctx, logger); err != nil {
					logger.Error(err, "rebuild failed")
					continue
				}
				logger.Info("rebuild completed")
				srv.NotifyReload()
			}
		}
	}()

	fmt.Printf("Dev server running on http://%s\n", srv.Addr())
	fmt.Printf("Serving files from: %s\n", cfg.OutputDir)
	return srv.Start(ctx)
}

// rebuild reloads the configuration and runs a full build. Reloading per
// rebuild means edits to bageri.json5 and the environment file take effect
// without restarting the dev server. The server keeps serving the output
// directory chosen at startup.
func rebuild(ctx context.Context, logger *logging.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return build.New(cfg, logger, newHookRunner(logger)).Build(ctx)
}
