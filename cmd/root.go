package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/newhook/ci-feedback/internal/config"
	"github.com/newhook/ci-feedback/internal/logging"
	cosignal "github.com/newhook/ci-feedback/internal/signal"
	"github.com/spf13/cobra"
)

var (
	// rootCtx holds the signal-cancellable context for the application
	rootCtx    context.Context
	rootCancel context.CancelFunc

	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ci-feedback",
	Short: "Summarize CI log artifacts into structured reports",
	Long: `ci-feedback reads the build, test and lint logs of a CI run and writes a
machine-readable summary.json and a human-readable summary.md digest.`,
	SilenceUsage: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rootCtx, rootCancel = cosignal.WithSignalCancel(context.Background())

		level, err := logging.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		if flagLogFile != "" {
			if err := logging.InitFile(os.Stderr, level, flagLogFile); err != nil {
				return err
			}
		} else {
			logging.Init(os.Stderr, level)
		}

		loaded, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command. The signal context and the log file are
// released on every exit path, including failed runs.
func Execute() error {
	defer func() {
		if rootCancel != nil {
			rootCancel()
		}
		_ = logging.Close()
	}()

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrRunFailed) {
		logging.Error("command failed", "error", err)
	}
	return err
}

// GetContext returns the root context that is cancelled on SIGINT/SIGTERM.
func GetContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default "+config.DefaultFileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "stderr log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append JSON debug logs to this file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(configCmd)
}
