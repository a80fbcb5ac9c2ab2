package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func ids(records []SecondaryRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestMatcher_TierPrecedence(t *testing.T) {
	secondary := []SecondaryRecord{
		{ID: "S1", BackReferenceID: "P1", Email: "other@y.com"},
		{ID: "S2", Email: "a@x.com", Phone: "5551234567"},
		{ID: "S3", Phone: "5551234567", Name: "Jo Lee", StartTime: t0},
	}
	m := NewMatcher(BuildIndex(secondary), DefaultDateWindow)

	tests := []struct {
		name    string
		primary PrimaryRecord
		tier    Tier
		matches []string
	}{
		{
			name:    "Reference beats email",
			primary: PrimaryRecord{ID: "P1", Email: "a@x.com"},
			tier:    TierExactReference,
			matches: []string{"S1"},
		},
		{
			name:    "Email beats phone",
			primary: PrimaryRecord{ID: "P2", Email: " A@X.com", Phone: "5551234567"},
			tier:    TierEmail,
			matches: []string{"S2"},
		},
		{
			name:    "Phone when email misses",
			primary: PrimaryRecord{ID: "P3", Email: "nobody@z.com", Phone: "+1 (555) 123-4567"},
			tier:    TierPhone,
			matches: []string{"S2", "S3"},
		},
		{
			name:    "Alternate phone when phone misses",
			primary: PrimaryRecord{ID: "P6", Name: "Ann Park", Phone: "555 000 9999", AltPhone: "555-123-4567"},
			tier:    TierPhone,
			matches: []string{"S2", "S3"},
		},
		{
			name:    "Alternate phone alone",
			primary: PrimaryRecord{ID: "P7", AltPhone: "5551234567"},
			tier:    TierPhone,
			matches: []string{"S2", "S3"},
		},
		{
			name:    "Name and date as last resort",
			primary: PrimaryRecord{ID: "P4", Name: "Lee, Jo", Timestamp: t0.Add(48 * time.Hour)},
			tier:    TierNameDate,
			matches: []string{"S3"},
		},
		{
			name:    "Nothing usable",
			primary: PrimaryRecord{ID: "P5"},
			tier:    TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, got := m.Match(tt.primary)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.matches, func() []string {
				if len(got) == 0 {
					return nil
				}
				return ids(got)
			}())
		})
	}
}

func TestMatcher_EmptyEmailNeverMatches(t *testing.T) {
	secondary := []SecondaryRecord{{ID: "S1", Email: ""}, {ID: "S2", Email: "   "}}
	m := NewMatcher(BuildIndex(secondary), DefaultDateWindow)

	tier, got := m.Match(PrimaryRecord{ID: "P1", Email: ""})
	assert.Equal(t, TierNone, tier)
	assert.Empty(t, got)

	tier, _ = m.Match(PrimaryRecord{ID: "P2", Email: "  "})
	assert.NotEqual(t, TierEmail, tier)
}

func TestMatcher_DateWindowBoundary(t *testing.T) {
	window := 7 * 24 * time.Hour
	primary := PrimaryRecord{ID: "P1", Name: "Jo Lee", Timestamp: t0}

	tests := []struct {
		name  string
		start time.Time
		want  Tier
	}{
		{"Exactly at window after", t0.Add(window), TierNameDate},
		{"Exactly at window before", t0.Add(-window), TierNameDate},
		{"One unit past window", t0.Add(window + time.Nanosecond), TierNone},
		{"One unit before window", t0.Add(-window - time.Nanosecond), TierNone},
		{"Absent start time", time.Time{}, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secondary := []SecondaryRecord{{ID: "S1", Name: "Jo Lee", StartTime: tt.start}}
			m := NewMatcher(BuildIndex(secondary), window)
			tier, _ := m.Match(primary)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestMatcher_NameDateScan(t *testing.T) {
	secondary := []SecondaryRecord{
		{ID: "S1", Name: "Jo Smith", StartTime: t0},
		{ID: "S2", Name: "Someone Else", Email: "lee@x.com", StartTime: t0.Add(time.Hour)},
		{ID: "S3", Name: "Unrelated", Email: "zed@x.com", StartTime: t0},
		{ID: "S4", Name: "Jo Lee", StartTime: t0.Add(30 * 24 * time.Hour)},
	}
	m := NewMatcher(BuildIndex(secondary), DefaultDateWindow)

	t.Run("Collects every candidate", func(t *testing.T) {
		tier, got := m.Match(PrimaryRecord{ID: "P1", Name: "Jo Lee", Timestamp: t0})
		assert.Equal(t, TierNameDate, tier)
		assert.Equal(t, []string{"S1", "S2"}, ids(got))
	})

	t.Run("Email local part contains the name", func(t *testing.T) {
		m := NewMatcher(BuildIndex([]SecondaryRecord{
			{ID: "S9", Email: "Jo.Smith@x.com", StartTime: t0},
		}), DefaultDateWindow)
		tier, _ := m.Match(PrimaryRecord{ID: "P1", Name: "JO", Timestamp: t0})
		assert.Equal(t, TierNameDate, tier)
	})

	t.Run("Absent primary timestamp", func(t *testing.T) {
		tier, _ := m.Match(PrimaryRecord{ID: "P1", Name: "Jo Lee"})
		assert.Equal(t, TierNone, tier)
	})

	t.Run("Empty primary name", func(t *testing.T) {
		tier, _ := m.Match(PrimaryRecord{ID: "P1", Name: "?!", Timestamp: t0})
		assert.Equal(t, TierNone, tier)
	})
}

func TestMatcher_DeduplicatesByID(t *testing.T) {
	secondary := []SecondaryRecord{
		{ID: "S1", Email: "a@x.com"},
		{ID: "S1", Email: "a@x.com"},
		{ID: "", Email: "a@x.com"},
		{ID: "S2", Email: "a@x.com"},
	}
	m := NewMatcher(BuildIndex(secondary), DefaultDateWindow)

	tier, got := m.Match(PrimaryRecord{ID: "P1", Email: "a@x.com"})
	assert.Equal(t, TierEmail, tier)
	assert.Equal(t, []string{"S1", "", "S2"}, ids(got))
}
