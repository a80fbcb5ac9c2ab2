package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"intake-reconciler/core/match"
	"intake-reconciler/core/metrics"
	"intake-reconciler/core/source"
	"intake-reconciler/feature/leads"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	leadsPath     string
	leadsDryRun   bool
	leadsYes      bool
	leadsLimit    int
	leadsWindow   time.Duration
	leadsWorkers  int
	leadsNameDate bool
)

// leadsCmd flags CRM leads that booked an appointment.
var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Flag leads that booked an appointment",
	Long: `Matches the CRM lead export against the configured appointments and
plans a success flag for every matched lead not flagged yet. Leads matched
only by name and date proximity are skipped unless --include-name-date is set.

Updates are recorded in the lead_statuses table and require confirmation.

Examples:
  # Plan only
  intake-reconciler leads --dry-run

  # Apply up to 100 updates without prompting
  intake-reconciler leads --limit 100 --yes`,
	RunE: runLeads,
}

func init() {
	leadsCmd.Flags().StringVar(&leadsPath, "leads", "leads.json", "Lead export path or object name")
	leadsCmd.Flags().BoolVar(&leadsDryRun, "dry-run", false, "Plan without applying")
	leadsCmd.Flags().BoolVar(&leadsYes, "yes", false, "Auto-confirm updates (non-interactive)")
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", leads.DefaultLimit, "Maximum updates per run (0 uses the default of 500, negative for no cap)")
	leadsCmd.Flags().DurationVar(&leadsWindow, "window", 0, "Name+date window (default from MATCH_DATE_WINDOW)")
	leadsCmd.Flags().IntVar(&leadsWorkers, "workers", 0, "Parallel workers (default from MATCH_WORKERS)")
	leadsCmd.Flags().BoolVar(&leadsNameDate, "include-name-date", false, "Also flag leads matched only by name and date proximity")

	RootCmd.AddCommand(leadsCmd)
}

func runLeads(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := bootstrap(true, true)
	if err != nil {
		return err
	}
	defer s.log.Sync()

	srcCfg := s.cfg.Source
	srcCfg.PrimaryPath = leadsPath
	srcCfg.PrimaryMapping = source.PresetLeads

	snap, err := source.LoadSnapshot(ctx, srcCfg, s.client, s.cfg.Storage.Bucket)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	engine, err := match.New(engineOptions(cmd, s.cfg.Match, leadsWindow, leadsWorkers), s.log)
	if err != nil {
		return err
	}
	rep, err := engine.Run(snap.Primary, snap.Secondary)
	if err != nil {
		return err
	}
	logSummary(s.log, rep.Summary)

	var store *leads.StatusStore
	if s.db != nil {
		store = leads.NewStatusStore(s.db)
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate lead statuses: %w", err)
		}
		flagged, err := store.Flagged(ctx)
		if err != nil {
			return fmt.Errorf("failed to load flagged leads: %w", err)
		}
		leads.MarkFlagged(rep.Results, flagged)
	}

	opts := leads.Options{DryRun: leadsDryRun, Limit: leadsLimit, AllowLowConfidence: leadsNameDate}
	plan := leads.BuildPlan(rep, opts)
	printLeadPlan(s.log, plan)

	if leadsDryRun {
		s.log.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		s.log.Info("No lead updates required.")
		return nil
	}
	if store == nil {
		return fmt.Errorf("applying lead updates requires a database connection")
	}

	if !confirm(os.Stdin, os.Stdout, leadsYes, fmt.Sprintf("flag %d leads", len(plan.Actions))) {
		s.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	executed, err := leads.Apply(ctx, store, plan, opts)
	metrics.RecordLeadUpdates("success", executed)
	if err != nil {
		metrics.RecordLeadUpdates("error", len(plan.Actions)-executed)
		return fmt.Errorf("failed to apply lead updates: %w", err)
	}

	s.log.Info("Flagged leads", zap.Int("count", executed))
	return nil
}

func printLeadPlan(l *zap.Logger, plan *leads.Plan) {
	sm := plan.Summary
	l.Info("Lead plan",
		zap.Int("total_leads", sm.TotalLeads),
		zap.Int("matched", sm.Matched),
		zap.Int("already_flagged", sm.AlreadyFlagged),
		zap.Int("low_confidence", sm.LowConfidence),
		zap.Int("planned", sm.Planned),
		zap.Int("over_limit", sm.OverLimit),
		zap.Int("limit", sm.Limit),
	)

	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for _, a := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", a.Type),
			zap.String("lead_id", a.LeadID),
			zap.String("reason", a.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}
