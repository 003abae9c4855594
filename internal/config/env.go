// Package config provides application configuration for the gearbox CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/comalice/gearbox/internal/core"
)

// EnvPrefix is prepended to every variable name, e.g. GEARBOX_LOG_LEVEL.
const EnvPrefix = "GEARBOX"

// Default values. The struct tags below must stay in sync with these.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultReportFormat = "yaml"
	DefaultMaxSteps     = core.DefaultMaxSteps
)

var ErrInvalidConfig = errors.New("invalid configuration")

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// LogLevel is the log verbosity level.
	// Env: GEARBOX_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is the log output format (console or json).
	// Env: GEARBOX_LOG_FORMAT (default: console)
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// ReportFormat is the run report encoding (yaml or json).
	// Env: GEARBOX_REPORT_FORMAT (default: yaml)
	ReportFormat string `envconfig:"REPORT_FORMAT" default:"yaml"`

	// MetricsFile is where run metrics are written in the Prometheus text
	// format. Empty disables the export.
	// Env: GEARBOX_METRICS_FILE
	MetricsFile string `envconfig:"METRICS_FILE"`

	// MaxSteps caps the operations a single run may apply.
	// Env: GEARBOX_MAX_STEPS (default: 10000)
	MaxSteps int `envconfig:"MAX_STEPS" default:"10000"`
}

// LoadFromEnv reads the GEARBOX_ variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize lowercases the enumerated values.
func (e EnvConfig) Normalize() EnvConfig {
	e.LogLevel = strings.ToLower(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	e.ReportFormat = strings.ToLower(strings.TrimSpace(e.ReportFormat))
	return e
}

// Validate checks the enumerated values and the step cap.
func (e EnvConfig) Validate() error {
	var errs []error
	switch e.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log level %q: want debug, info, warn or error", e.LogLevel))
	}
	switch e.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q: want console or json", e.LogFormat))
	}
	switch e.ReportFormat {
	case "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("report format %q: want yaml or json", e.ReportFormat))
	}
	if e.MaxSteps < 1 {
		errs = append(errs, fmt.Errorf("max steps %d: must be positive", e.MaxSteps))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
