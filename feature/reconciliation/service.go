package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"intake-reconciler/core/database"
	"intake-reconciler/core/match"
	"intake-reconciler/core/metrics"
	"intake-reconciler/core/report"
	"intake-reconciler/core/source"
	"intake-reconciler/core/storage"
	"intake-reconciler/feature/reconciliation/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run origins.
const (
	OriginInline  = "inline"
	OriginSources = "sources"
	OriginCLI     = "cli"
)

var (
	// ErrRunNotFound is returned when a persisted run does not exist.
	ErrRunNotFound = errors.New("run not found")
	// ErrPersistenceDisabled is returned when no database is configured.
	ErrPersistenceDisabled = errors.New("persistence disabled: no database connection")
	// ErrPublishDisabled is returned when publishing without a storage client.
	ErrPublishDisabled = errors.New("publishing disabled: no storage client")
)

// createBatchSize bounds rows per INSERT when storing run results.
const createBatchSize = 500

// Service runs reconciliations and keeps their history.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	storage storage.Config
	sources source.Config
	opts    match.Options
	cache   *source.Cache
	logger  *zap.Logger
}

// NewService creates a reconciliation service. db and client may be nil;
// persistence and publishing are then unavailable.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, sources source.Config, opts match.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:      db,
		client:  client,
		storage: storageCfg,
		sources: sources,
		opts:    opts,
		cache:   source.NewCache(sources.CacheTTL),
		logger:  logger,
	}
}

// Migrate creates the run tables and verifies their columns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Run{}, &models.RunResult{}); err != nil {
		return fmt.Errorf("failed to migrate run tables: %w", err)
	}
	return database.VerifyTables(db, models.Schema())
}

// Options returns the configured engine options.
func (s *Service) Options() match.Options {
	return s.opts
}

// Persistent reports whether runs can be stored.
func (s *Service) Persistent() bool {
	return s.db != nil
}

// Reconcile runs the engine over the given collections.
func (s *Service) Reconcile(ctx context.Context, origin string, opts match.Options, primary []match.PrimaryRecord, secondary []match.SecondaryRecord) (*match.Report, time.Duration, error) {
	engine, err := match.New(opts, s.logger)
	if err != nil {
		metrics.RecordRunFailure(origin)
		return nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	rep, err := engine.Run(primary, secondary)
	took := time.Since(start)
	if err != nil {
		metrics.RecordRunFailure(origin)
		return nil, took, err
	}

	metrics.RecordRun(origin, rep.Summary, took)
	s.logger.Info("Reconciliation finished",
		zap.String("origin", origin),
		zap.Int("primary", rep.Summary.TotalPrimary),
		zap.Int("secondary", rep.Summary.TotalSecondary),
		zap.Int("matched", rep.Summary.Matched()),
		zap.Int("unmatched", rep.Summary.Unmatched),
		zap.Duration("took", took),
	)
	return rep, took, nil
}

// Snapshot loads the configured sources through the cache.
func (s *Service) Snapshot(ctx context.Context) (*source.Snapshot, error) {
	snap, err := s.cache.Get(ctx, s.sources.CacheKey(), func(ctx context.Context) (*source.Snapshot, error) {
		snap, err := source.LoadSnapshot(ctx, s.sources, s.client, s.storage.Bucket)
		metrics.RecordSnapshotLoad(err)
		if err == nil {
			s.logger.Debug("Loaded source snapshot",
				zap.Int("primary", len(snap.Primary)),
				zap.Int("secondary", len(snap.Secondary)),
			)
		}
		return snap, err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// RefreshSources drops the cached snapshot.
func (s *Service) RefreshSources() {
	s.cache.Invalidate(s.sources.CacheKey())
}

// SourceRun is the outcome of a reconciliation over the configured sources.
type SourceRun struct {
	RunID     uint
	Report    *match.Report
	Published *report.Published
}

// ReconcileSources runs against the configured sources, persists the run when
// a database is available and optionally publishes the artifacts.
func (s *Service) ReconcileSources(ctx context.Context, origin string, opts match.Options, publish bool) (*SourceRun, error) {
	if publish && s.client == nil {
		return nil, ErrPublishDisabled
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		metrics.RecordRunFailure(origin)
		return nil, err
	}

	rep, took, err := s.Reconcile(ctx, origin, opts, snap.Primary, snap.Secondary)
	if err != nil {
		return nil, err
	}

	out := &SourceRun{Report: rep}

	var run *models.Run
	if s.db != nil {
		run = models.NewRun(origin, opts.DateWindow, took, rep)
		if err := s.db.WithContext(ctx).Session(&gorm.Session{CreateBatchSize: createBatchSize}).Create(run).Error; err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
		out.RunID = run.ID
	}

	if publish {
		prefix := s.storage.ReportPrefix
		if run != nil {
			prefix = prefix + "/" + strconv.FormatUint(uint64(run.ID), 10)
		} else {
			prefix = prefix + "/" + time.Now().UTC().Format("20060102T150405Z")
		}
		published, err := report.Publish(ctx, s.client, s.storage.Bucket, prefix, rep)
		if err != nil {
			return nil, err
		}
		out.Published = published
		if run != nil {
			err := s.db.WithContext(ctx).Model(&models.Run{}).Where("id = ?", run.ID).Update("report_object", published.JSON).Error
			if err != nil {
				s.logger.Warn("Failed to record published report", zap.Uint("run_id", run.ID), zap.Error(err))
			}
		}
	}

	return out, nil
}

// GetRun loads a persisted run with its results in input order.
func (s *Service) GetRun(ctx context.Context, id uint) (*models.Run, error) {
	if s.db == nil {
		return nil, ErrPersistenceDisabled
	}

	var run models.Run
	err := s.db.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	return &run, nil
}
