package models

import (
	"strings"
	"time"

	"intake-reconciler/core/match"
)

const idSeparator = "|"

// Run is one persisted reconciliation run.
type Run struct {
	ID                uint        `gorm:"column:id;primaryKey" json:"id"`
	Origin            string      `gorm:"column:origin;size:32;index" json:"origin"`
	DateWindowSeconds int64       `gorm:"column:date_window_seconds" json:"date_window_seconds"`
	TotalPrimary      int         `gorm:"column:total_primary" json:"total_primary"`
	TotalSecondary    int         `gorm:"column:total_secondary" json:"total_secondary"`
	ByReference       int         `gorm:"column:matched_by_reference" json:"matched_by_reference"`
	ByEmail           int         `gorm:"column:matched_by_email" json:"matched_by_email"`
	ByPhone           int         `gorm:"column:matched_by_phone" json:"matched_by_phone"`
	ByNameDate        int         `gorm:"column:matched_by_name_date" json:"matched_by_name_date"`
	Unmatched         int         `gorm:"column:unmatched" json:"unmatched"`
	DurationMillis    int64       `gorm:"column:duration_ms" json:"duration_ms"`
	ReportObject      string      `gorm:"column:report_object;size:255" json:"report_object,omitempty"`
	CreatedAt         time.Time   `gorm:"column:created_at" json:"created_at"`
	Results           []RunResult `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "runs"
}

// Summary rebuilds the engine summary from the stored counts.
func (r Run) Summary() match.Summary {
	return match.Summary{
		TotalPrimary:   r.TotalPrimary,
		TotalSecondary: r.TotalSecondary,
		ByReference:    r.ByReference,
		ByEmail:        r.ByEmail,
		ByPhone:        r.ByPhone,
		ByNameDate:     r.ByNameDate,
		Unmatched:      r.Unmatched,
	}
}

// RunResult is the per-primary outcome of a run.
type RunResult struct {
	ID         uint   `gorm:"column:id;primaryKey" json:"-"`
	RunID      uint   `gorm:"column:run_id;index" json:"-"`
	Position   int    `gorm:"column:position" json:"-"`
	PrimaryID  string `gorm:"column:primary_id;size:128;index" json:"primary_id"`
	Name       string `gorm:"column:name;size:255" json:"name"`
	Email      string `gorm:"column:email;size:255" json:"email"`
	Matched    bool   `gorm:"column:matched" json:"matched"`
	Tier       string `gorm:"column:tier;size:16" json:"tier"`
	MatchedIDs string `gorm:"column:matched_secondary_ids;type:text" json:"matched_secondary_ids"`
}

// TableName overrides the table name.
func (RunResult) TableName() string {
	return "run_results"
}

// SecondaryIDs splits the stored matched IDs.
func (r RunResult) SecondaryIDs() []string {
	if r.MatchedIDs == "" {
		return []string{}
	}
	return strings.Split(r.MatchedIDs, idSeparator)
}

// NewRun converts an engine report to its persisted form.
func NewRun(origin string, window, took time.Duration, report *match.Report) *Run {
	s := report.Summary
	run := &Run{
		Origin:            origin,
		DateWindowSeconds: int64(window / time.Second),
		TotalPrimary:      s.TotalPrimary,
		TotalSecondary:    s.TotalSecondary,
		ByReference:       s.ByReference,
		ByEmail:           s.ByEmail,
		ByPhone:           s.ByPhone,
		ByNameDate:        s.ByNameDate,
		Unmatched:         s.Unmatched,
		DurationMillis:    took.Milliseconds(),
		Results:           make([]RunResult, 0, len(report.Results)),
	}
	for i, res := range report.Results {
		run.Results = append(run.Results, RunResult{
			Position:   i,
			PrimaryID:  res.PrimaryID,
			Name:       res.Name,
			Email:      res.Email,
			Matched:    res.Matched,
			Tier:       res.Tier.String(),
			MatchedIDs: strings.Join(res.MatchedIDs(), idSeparator),
		})
	}
	return run
}

// Schema lists the columns each table must expose after migration.
func Schema() map[string][]string {
	return map[string][]string{
		Run{}.TableName(): {
			"id", "origin", "date_window_seconds", "total_primary", "total_secondary",
			"matched_by_reference", "matched_by_email", "matched_by_phone",
			"matched_by_name_date", "unmatched", "duration_ms", "report_object", "created_at",
		},
		RunResult{}.TableName(): {
			"id", "run_id", "position", "primary_id", "name", "email", "matched", "tier", "matched_secondary_ids",
		},
	}
}
