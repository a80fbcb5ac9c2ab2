package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"intake-reconciler/core/report"
	"intake-reconciler/feature/reconciliation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	matchWindow   time.Duration
	matchWorkers  int
	matchJSONPath string
	matchCSVPath  string
	matchPublish  bool
)

// matchCmd reconciles the configured sources and writes the reports.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match intakes to appointments and write the reports",
	Long: `Loads the configured primary and secondary exports, resolves every
primary record through the matching tiers and writes the JSON and CSV reports.

The run is stored when a database is reachable. --publish also uploads both
reports to the configured bucket.

Examples:
  intake-reconciler match
  intake-reconciler match --window 72h --workers 8
  intake-reconciler match --json out/matches.json --csv "" --publish`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().DurationVar(&matchWindow, "window", 0, "Name+date window (default from MATCH_DATE_WINDOW)")
	matchCmd.Flags().IntVar(&matchWorkers, "workers", 0, "Parallel workers (default from MATCH_WORKERS)")
	matchCmd.Flags().StringVar(&matchJSONPath, "json", "intake_matches.json", "JSON report path (empty to skip)")
	matchCmd.Flags().StringVar(&matchCSVPath, "csv", "intake_matches.csv", "CSV report path (empty to skip)")
	matchCmd.Flags().BoolVar(&matchPublish, "publish", false, "Upload the reports to object storage")

	RootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := bootstrap(true, true)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	if s.db != nil {
		if err := reconciliation.Migrate(s.db); err != nil {
			return err
		}
	}

	svc := reconciliation.NewService(s.db, s.client, s.cfg.Storage, s.cfg.Source, s.cfg.Match, s.log)
	opts := engineOptions(cmd, s.cfg.Match, matchWindow, matchWorkers)

	s.log.Info("Starting match",
		zap.String("primary", s.cfg.Source.PrimaryPath),
		zap.String("secondary", s.cfg.Source.SecondaryPath),
		zap.Duration("date_window", opts.DateWindow),
	)

	out, err := svc.ReconcileSources(ctx, reconciliation.OriginCLI, opts, matchPublish)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	logSummary(s.log, out.Report.Summary)

	if matchJSONPath != "" {
		if err := writeFile(matchJSONPath, func(f *os.File) error { return report.WriteJSON(f, out.Report) }); err != nil {
			return err
		}
		s.log.Info("Wrote JSON report", zap.String("path", matchJSONPath))
	}
	if matchCSVPath != "" {
		if err := writeFile(matchCSVPath, func(f *os.File) error { return report.WriteCSV(f, out.Report) }); err != nil {
			return err
		}
		s.log.Info("Wrote CSV report", zap.String("path", matchCSVPath))
	}
	if out.RunID != 0 {
		s.log.Info("Stored run", zap.Uint("run_id", out.RunID))
	}
	if out.Published != nil {
		s.log.Info("Published reports", zap.String("json", out.Published.JSON), zap.String("csv", out.Published.CSV))
	}

	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
