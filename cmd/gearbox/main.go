// Package main is the entry point for the gearbox CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/gearbox/internal/config"
	"github.com/comalice/gearbox/internal/logging"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "gearbox",
		Short: "Five-gear manual transmission model",
		Long: `gearbox validates gear range tables and drives a manual transmission
model through scripted scenarios.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  GEARBOX_LOG_LEVEL       Log level: debug, info, warn, error (default: info)
  GEARBOX_LOG_FORMAT      Log format: console, json (default: console)
  GEARBOX_REPORT_FORMAT   Run report format: yaml, json (default: yaml)
  GEARBOX_METRICS_FILE    Prometheus textfile written after a run
  GEARBOX_MAX_STEPS       Operation cap per run (default: 10000)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (overrides GEARBOX_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (overrides GEARBOX_LOG_FORMAT)")

	cmd.AddCommand(runCmd(&flags))
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(dotCmd(&flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, flags *globalFlags) (config.EnvConfig, *zap.Logger, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return config.EnvConfig{}, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return config.EnvConfig{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
