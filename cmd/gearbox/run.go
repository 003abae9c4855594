package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/production"
)

type runFlags struct {
	report      string
	format      string
	metricsFile string
}

func runCmd(global *globalFlags) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run SCENARIO",
		Short: "Drive a transmission through a scenario file",
		Long: `Run the steps of a YAML or JSON scenario file, then auto-drive to each
drive_to target in order, and write a report of every step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScenario(ctx, cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.report, "report", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flags.format, "format", "", "Report format: yaml, json (overrides GEARBOX_REPORT_FORMAT)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file (overrides GEARBOX_METRICS_FILE)")

	return cmd
}

func runScenario(ctx context.Context, cmd *cobra.Command, global *globalFlags, flags runFlags, path string) error {
	cfg, logger, err := setup(cmd, global)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if flags.format != "" {
		cfg.ReportFormat = flags.format
	}
	if flags.metricsFile != "" {
		cfg.MetricsFile = flags.metricsFile
	}

	scenario, err := production.LoadScenario(path)
	if err != nil {
		return err
	}
	table, err := scenario.Table()
	if err != nil {
		return err
	}
	script, err := scenario.Script()
	if err != nil {
		return err
	}
	tr, err := gearbox.NewFromTable(table)
	if err != nil {
		return fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("scenario", scenario.Name))
	journal := production.NewJournal()
	reg := prometheus.NewRegistry()
	driver := core.NewDriver(
		core.WithRunID(runID),
		core.WithLogger(logger),
		core.WithMaxSteps(cfg.MaxSteps),
		core.WithPublisher(production.MultiPublisher{
			production.NewLogPublisher(logger),
			production.NewMetricsPublisher(reg),
			journal,
		}),
	)

	logger.Info("run started", zap.String("run_id", runID), zap.String("fingerprint", table.Fingerprint()))

	tr, err = driver.Run(ctx, tr, script)
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	for _, target := range scenario.DriveTo {
		tr, err = driver.DriveTo(ctx, tr, target)
		if err != nil {
			return fmt.Errorf("run %s: drive to %d: %w", runID, target, err)
		}
	}

	accepted, rejected := journal.Counts()
	logger.Info("run finished",
		zap.String("run_id", runID),
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
		zap.Stringer("final", tr),
	)

	report := production.Report{
		RunID:       runID,
		Scenario:    scenario.Name,
		Fingerprint: table.Fingerprint(),
		Final:       core.ViewOf(tr),
		Accepted:    accepted,
		Rejected:    rejected,
		Steps:       journal.Steps(),
	}
	if err := writeReport(cmd.OutOrStdout(), flags.report, cfg.ReportFormat, report); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := production.WriteMetricsFile(cfg.MetricsFile, reg); err != nil {
			return err
		}
		logger.Debug("metrics written", zap.String("path", cfg.MetricsFile))
	}
	return nil
}

func writeReport(stdout io.Writer, path, format string, report production.Report) error {
	if path == "" {
		return production.WriteReport(stdout, format, report)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := production.WriteReport(f, format, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
