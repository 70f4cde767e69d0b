package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/misterram/mediacore/cmd/internal"
	"github.com/misterram/mediacore/internal/config"
	"github.com/misterram/mediacore/internal/slogutil"
)

var cfgFile string

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// Root command flags
var (
	rootOutput   string
	rootLogLevel string
)

// NewRootCmd creates the root command for the progress CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediacore-progress",
		Short: "Render and animate a percentage progress bar",
		Long: `mediacore-progress drives the MediaCore progress bar headlessly.

It maps a percentage to a background offset, a title and a label text, either
in one step (set) or animated with an easing transition (animate). A fill image
can be given with --url; once its width is known offsets are computed in pixels.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mediacore-progress.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootOutput, "output", "o", internal.FormatText, "output format (text or yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newAnimateCmd())
	rootCmd.AddCommand(newTransitionsCmd())

	return rootCmd
}

// loadEnv loads configuration and builds the logger for a command.
func loadEnv(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigWithFile(workDir, GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if rootLogLevel != "" {
		cfg.Log.Level = rootLogLevel
	}

	return cfg, slogutil.Setup(cfg.Log, cmd.ErrOrStderr()), nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
