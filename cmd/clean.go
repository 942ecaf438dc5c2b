package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/druskus20/bageri/internal/build"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts",
	Long:  `Remove the output directory and hook scratch directories.`,
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := build.Clean(cfg, logger); err != nil {
		return err
	}
	fmt.Println("Clean complete!")
	return nil
}
