package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"intake-reconciler/core/config"
	"intake-reconciler/core/database"
	"intake-reconciler/core/logger"
	"intake-reconciler/core/match"
	"intake-reconciler/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session bundles what every command needs.
type session struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	client storage.Client
}

// bootstrap loads configuration and the logger. The database and storage
// client are optional and left nil when unavailable.
func bootstrap(withDB, withStorage bool) (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &session{cfg: cfg, log: l}

	if withDB {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = db
			l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if withStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.client = client
	}

	return rt, nil
}

// engineOptions applies --window and --workers when they were given.
func engineOptions(cmd *cobra.Command, base match.Options, window time.Duration, workers int) match.Options {
	opts := base
	if cmd.Flags().Changed("window") {
		opts.DateWindow = window
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = workers
	}
	return opts
}

// logSummary logs the tier distribution of a report.
func logSummary(l *zap.Logger, s match.Summary) {
	l.Info("Match summary",
		zap.Int("total_primary", s.TotalPrimary),
		zap.Int("total_secondary", s.TotalSecondary),
		zap.Int("matched_by_reference", s.ByReference),
		zap.Int("matched_by_email", s.ByEmail),
		zap.Int("matched_by_phone", s.ByPhone),
		zap.Int("matched_by_name_date", s.ByNameDate),
		zap.Int("unmatched", s.Unmatched),
	)
}

// confirm prompts for "yes" unless autoYes is set.
func confirm(in io.Reader, out io.Writer, autoYes bool, prompt string) bool {
	if autoYes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "\n⚠️  Type 'yes' to %s: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
