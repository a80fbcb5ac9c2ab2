package match

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Default", DefaultOptions(), false},
		{"Zero window", Options{}, false},
		{"Negative window", Options{DateWindow: -time.Second}, true},
		{"Negative workers", Options{DateWindow: time.Hour, Workers: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	e, err := New(Options{DateWindow: -time.Hour}, zap.NewNop())
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrConfiguration)

	report, err := Run(Options{DateWindow: -time.Hour}, []PrimaryRecord{{ID: "P1"}}, nil)
	assert.Nil(t, report, "no partial results on configuration errors")
	assert.Error(t, err)
}

func TestEngine_EndToEndEmail(t *testing.T) {
	engine, err := New(DefaultOptions(), zap.NewNop())
	require.NoError(t, err)

	primary := []PrimaryRecord{{ID: "P1", Email: "a@x.com", Name: "Jo Lee", Timestamp: t0}}
	secondary := []SecondaryRecord{{ID: "S1", Email: "a@x.com", Name: "Jo Lee", StartTime: t0.Add(24 * time.Hour)}}

	report, err := engine.Run(primary, secondary)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	r := report.Results[0]
	assert.True(t, r.Matched)
	assert.Equal(t, TierEmail, r.Tier)
	assert.Equal(t, []Tier{TierEmail}, r.Tiers)
	assert.Equal(t, []string{"S1"}, r.MatchedIDs())
	assert.Equal(t, "Jo Lee", r.Name)
	assert.Equal(t, t0, r.Timestamp)
	assert.Equal(t, 1, report.Summary.ByEmail)
}

func TestEngine_NoSignalIsUnmatched(t *testing.T) {
	primary := []PrimaryRecord{{ID: "P1", Name: "Jo Lee"}}
	secondary := []SecondaryRecord{
		{ID: "S1", Name: "Jo Lee", Email: "a@x.com", Phone: "5551234567", StartTime: t0},
	}

	report, err := Run(DefaultOptions(), primary, secondary)
	require.NoError(t, err)

	r := report.Results[0]
	assert.False(t, r.Matched)
	assert.Equal(t, TierNone, r.Tier)
	assert.Empty(t, r.Tiers)
	assert.Empty(t, r.Matches)
	assert.Equal(t, 1, report.Summary.Unmatched)
}

func TestEngine_ReferenceRegardlessOfEmail(t *testing.T) {
	primary := []PrimaryRecord{{ID: "P1", Email: "mine@x.com"}}
	secondary := []SecondaryRecord{
		{ID: "S1", BackReferenceID: "P1", Email: "theirs@y.com"},
		{ID: "S2", Email: "mine@x.com"},
	}

	report, err := Run(DefaultOptions(), primary, secondary)
	require.NoError(t, err)

	r := report.Results[0]
	assert.Equal(t, TierExactReference, r.Tier)
	assert.Equal(t, []Tier{TierExactReference}, r.Tiers)
	assert.Equal(t, []string{"S1"}, r.MatchedIDs())
	assert.Equal(t, 1, report.Summary.ByReference)
	assert.Equal(t, 0, report.Summary.ByEmail)
}

// mixedFixture builds collections that exercise every tier.
func mixedFixture(n int) ([]PrimaryRecord, []SecondaryRecord) {
	var primary []PrimaryRecord
	var secondary []SecondaryRecord
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("P%d", i)
		ts := t0.Add(time.Duration(i) * time.Hour)
		p := PrimaryRecord{ID: id, Timestamp: ts, Name: fmt.Sprintf("client%d family", i)}
		switch i % 5 {
		case 0:
			secondary = append(secondary, SecondaryRecord{ID: "R" + id, BackReferenceID: id})
		case 1:
			p.Email = fmt.Sprintf("c%d@x.com", i)
			secondary = append(secondary, SecondaryRecord{ID: "E" + id, Email: p.Email})
		case 2:
			p.Phone = fmt.Sprintf("+1 555 %07d", i)
			secondary = append(secondary, SecondaryRecord{ID: "T" + id, Phone: fmt.Sprintf("555%07d", i)})
		case 3:
			secondary = append(secondary, SecondaryRecord{ID: "N" + id, Name: fmt.Sprintf("Client%d", i), StartTime: ts})
		case 4:
			p.Name = ""
		}
		primary = append(primary, p)
	}
	return primary, secondary
}

func TestEngine_TotalityAndConservation(t *testing.T) {
	primary, secondary := mixedFixture(50)

	report, err := Run(DefaultOptions(), primary, secondary)
	require.NoError(t, err)

	require.Len(t, report.Results, len(primary))
	for i, r := range report.Results {
		assert.Equal(t, primary[i].ID, r.PrimaryID, "results keep input order")
		assert.Equal(t, r.Matched, len(r.Tiers) > 0)
		assert.Equal(t, r.Matched, len(r.Matches) > 0)
	}

	s := report.Summary
	assert.Equal(t, 50, s.TotalPrimary)
	assert.Equal(t, len(secondary), s.TotalSecondary)
	assert.Equal(t, s.TotalPrimary, s.ByReference+s.ByEmail+s.ByPhone+s.ByNameDate+s.Unmatched)
	assert.Equal(t, 10, s.ByReference)
	assert.Equal(t, 10, s.ByEmail)
	assert.Equal(t, 10, s.ByPhone)
	assert.Equal(t, 10, s.ByNameDate)
	assert.Equal(t, 10, s.Unmatched)
	assert.Equal(t, 40, s.Matched())
}

func TestEngine_WorkersPreserveOrder(t *testing.T) {
	primary, secondary := mixedFixture(500)

	sequential, err := Run(DefaultOptions(), primary, secondary)
	require.NoError(t, err)

	parallel, err := Run(Options{DateWindow: DefaultDateWindow, Workers: 8}, primary, secondary)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestEngine_ResultAttributesAreCopies(t *testing.T) {
	primary := []PrimaryRecord{
		{ID: "L1", Attributes: map[string]string{"status": "pending"}},
		{ID: "L2"},
	}

	report, err := Run(DefaultOptions(), primary, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, primary[0].Attributes, report.Results[0].Attributes)
	assert.Nil(t, report.Results[1].Attributes)

	report.Results[0].Attributes["status"] = "success"
	assert.Equal(t, "pending", primary[0].Attributes["status"])
}

func TestEngine_EmptyCollections(t *testing.T) {
	report, err := Run(DefaultOptions(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, Summary{}, report.Summary)
}

func TestTier_Text(t *testing.T) {
	for _, tier := range append(Tiers(), TierNone) {
		text, err := tier.MarshalText()
		require.NoError(t, err)

		var back Tier
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, tier, back)
	}

	_, err := ParseTier("bogus")
	assert.Error(t, err)
	assert.Equal(t, "tier(9)", Tier(9).String())
	assert.True(t, TierNameDate.LowConfidence())
	assert.False(t, TierEmail.LowConfidence())
}
