package cmd

import (
	"net/http/httptest"
	"strings"
	"testing"

	"intake-reconciler/core/config"
	"intake-reconciler/core/match"
	"intake-reconciler/core/middleware/auth"
	"intake-reconciler/core/middleware/rayid"
	"intake-reconciler/core/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSession(apiKey string) *session {
	return &session{
		cfg: &config.Config{
			Server: server.Config{Port: "8080", ApiKey: apiKey, BodyLimitMB: 1},
			Match:  match.DefaultOptions(),
		},
		log: zap.NewNop(),
	}
}

func TestNewApp(t *testing.T) {
	app, err := newApp(testSession("secret"))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(rayid.Header))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := `{"primary": [{"id": "P1", "email": "a@x.com"}], "secondary": [{"id": "S1", "email": "A@X.com"}]}`

	req := httptest.NewRequest("POST", "/reconcile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("POST", "/reconcile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
