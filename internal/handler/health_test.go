package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pessoas-api/backend/api"
	"github.com/pessoas-api/backend/internal/handler"
)

// pingerFunc adapts a function to handler.Pinger.
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveProbe(t *testing.T, db handler.Pinger, path string) (*httptest.ResponseRecorder, handler.HealthResponse) {
	t.Helper()
	h := handler.Handler(handler.NewServer(nil, db))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"} without touching the database.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec, body := serveProbe(t, nil, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body.Status)
}

func TestGetReady_DatabaseUp(t *testing.T) {
	db := pingerFunc(func(context.Context) error { return nil })

	rec, body := serveProbe(t, db, "/readyz")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body.Status)
}

func TestGetReady_DatabaseDown(t *testing.T) {
	db := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	rec, body := serveProbe(t, db, "/readyz")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "unavailable", body.Status)
}

func TestGetOpenAPI(t *testing.T) {
	h := handler.Handler(handler.NewServer(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, api.OpenAPI, rec.Body.Bytes())
}
