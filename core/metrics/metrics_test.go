package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"intake-reconciler/core/match"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PrimaryRecordsTotal.WithLabelValues("email"))
	runsBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("test", "success"))

	RecordRun("test", match.Summary{TotalPrimary: 3, ByEmail: 2, Unmatched: 1}, 10*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(PrimaryRecordsTotal.WithLabelValues("email")))
	assert.Equal(t, runsBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues("test", "success")))
}

func TestRecordSnapshotLoad(t *testing.T) {
	before := testutil.ToFloat64(SnapshotLoadsTotal.WithLabelValues("error"))
	RecordSnapshotLoad(errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(SnapshotLoadsTotal.WithLabelValues("error")))
}

func TestHandler(t *testing.T) {
	RecordRunFailure("handler")

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "intake_reconciler_engine_runs_total")
}
