package leads

import (
	"context"
	"testing"

	"intake-reconciler/core/database"
	"intake-reconciler/core/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *StatusStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := NewStatusStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestStatusStore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	plan := BuildPlan(leadReport(), Options{})
	n, err := Apply(ctx, store, plan, Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	st, err := store.Get(ctx, "L4")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, "email", st.Tier)
	assert.Equal(t, "A3|A4", st.MatchedIDs)

	missing, err := store.Get(ctx, "L3")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	// Upsert keeps one row per lead.
	require.NoError(t, store.FlagSuccess(ctx, Action{LeadID: "L4", Tier: match.TierPhone}))
	st, err = store.Get(ctx, "L4")
	require.NoError(t, err)
	assert.Equal(t, "phone", st.Tier)

	flagged, err := store.Flagged(ctx)
	require.NoError(t, err)
	assert.Len(t, flagged, 2)
}

func TestMarkFlagged_Idempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	rep := leadReport()
	_, err := Apply(ctx, store, BuildPlan(rep, Options{}), Options{Confirmed: true})
	require.NoError(t, err)

	flagged, err := store.Flagged(ctx)
	require.NoError(t, err)

	again := leadReport()
	MarkFlagged(again.Results, flagged)
	plan := BuildPlan(again, Options{})
	assert.Empty(t, plan.Actions)
	assert.Equal(t, 3, plan.Summary.AlreadyFlagged)
}

func TestMarkFlagged_LeavesInputRecordsUntouched(t *testing.T) {
	primary := []match.PrimaryRecord{{ID: "L1", Email: "a@x.com", Attributes: map[string]string{"status": "pending"}}}
	secondary := []match.SecondaryRecord{{ID: "A1", Email: "a@x.com"}}

	rep, err := match.Run(match.DefaultOptions(), primary, secondary)
	require.NoError(t, err)

	MarkFlagged(rep.Results, map[string]struct{}{"L1": {}})
	assert.Equal(t, StatusSuccess, rep.Results[0].Attributes[StatusAttribute])
	assert.Equal(t, "pending", primary[0].Attributes[StatusAttribute])
}
