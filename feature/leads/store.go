package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"intake-reconciler/core/match"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeadStatus is the locally recorded status of a lead.
type LeadStatus struct {
	LeadID     string    `gorm:"column:lead_id;primaryKey;size:128"`
	Status     string    `gorm:"column:status;size:32"`
	Tier       string    `gorm:"column:tier;size:16"`
	MatchedIDs string    `gorm:"column:matched_secondary_ids;type:text"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (LeadStatus) TableName() string {
	return "lead_statuses"
}

// StatusStore records lead updates in the database.
type StatusStore struct {
	db *gorm.DB
}

// NewStatusStore creates a store.
func NewStatusStore(db *gorm.DB) *StatusStore {
	return &StatusStore{db: db}
}

// Migrate creates the lead_statuses table.
func (s *StatusStore) Migrate() error {
	return s.db.AutoMigrate(&LeadStatus{})
}

// FlagSuccess upserts one lead.
func (s *StatusStore) FlagSuccess(ctx context.Context, action Action) error {
	return s.FlagSuccessBatch(ctx, []Action{action})
}

// FlagSuccessBatch upserts all leads in one statement.
func (s *StatusStore) FlagSuccessBatch(ctx context.Context, actions []Action) error {
	if len(actions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]LeadStatus, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, LeadStatus{
			LeadID:     a.LeadID,
			Status:     StatusSuccess,
			Tier:       a.Tier.String(),
			MatchedIDs: strings.Join(a.MatchedIDs, "|"),
			UpdatedAt:  now,
		})
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lead_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "tier", "matched_secondary_ids", "updated_at"}),
	}).CreateInBatches(rows, 500).Error
}

// Get returns the recorded status of a lead, or nil when none exists.
func (s *StatusStore) Get(ctx context.Context, leadID string) (*LeadStatus, error) {
	var st LeadStatus
	err := s.db.WithContext(ctx).First(&st, "lead_id = ?", leadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Flagged returns the IDs of leads already recorded as success.
func (s *StatusStore) Flagged(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&LeadStatus{}).Where("status = ?", StatusSuccess).Pluck("lead_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// MarkFlagged copies locally recorded success statuses onto the report's
// attributes so BuildPlan skips leads flagged by an earlier pass.
func MarkFlagged(results []match.MatchResult, flagged map[string]struct{}) {
	for i := range results {
		if _, ok := flagged[results[i].PrimaryID]; !ok {
			continue
		}
		if results[i].Attributes == nil {
			results[i].Attributes = map[string]string{}
		}
		results[i].Attributes[StatusAttribute] = StatusSuccess
	}
}
