package models

import (
	"testing"
	"time"

	"intake-reconciler/core/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	report := &match.Report{
		Summary: match.Summary{TotalPrimary: 2, TotalSecondary: 3, ByPhone: 1, Unmatched: 1},
		Results: []match.MatchResult{
			{
				PrimaryID: "P1", Matched: true, Tier: match.TierPhone, Tiers: []match.Tier{match.TierPhone},
				Matches: []match.SecondaryRecord{{ID: "S1"}, {ID: "S2"}},
				Name:    "Jo Lee",
			},
			{PrimaryID: "P2", Tier: match.TierNone},
		},
	}

	run := NewRun("sources", 7*24*time.Hour, 1500*time.Millisecond, report)

	assert.Equal(t, "sources", run.Origin)
	assert.Equal(t, int64(604800), run.DateWindowSeconds)
	assert.Equal(t, int64(1500), run.DurationMillis)
	assert.Equal(t, report.Summary, run.Summary())

	require.Len(t, run.Results, 2)
	assert.Equal(t, "phone", run.Results[0].Tier)
	assert.Equal(t, "S1|S2", run.Results[0].MatchedIDs)
	assert.Equal(t, []string{"S1", "S2"}, run.Results[0].SecondaryIDs())
	assert.Equal(t, "none", run.Results[1].Tier)
	assert.Equal(t, []string{}, run.Results[1].SecondaryIDs())
	assert.Equal(t, 1, run.Results[1].Position)
}

func TestSchema(t *testing.T) {
	schema := Schema()
	assert.Contains(t, schema, "runs")
	assert.Contains(t, schema["run_results"], "matched_secondary_ids")
}
