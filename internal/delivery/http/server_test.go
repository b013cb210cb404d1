package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/repository"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedStats repository.Stats

func (s fixedStats) Stats() repository.Stats { return repository.Stats(s) }

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	r := NewRouter(pingerFunc(func(context.Context) error { return errors.New("down") }), fixedStats{}, zap.NewNop())

	rec := serve(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code, "liveness does not depend on the store")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Readyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ping   error
		status int
	}{
		{name: "store reachable", status: http.StatusOK},
		{name: "store down", ping: errors.New("connection refused"), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(pingerFunc(func(context.Context) error { return tt.ping }), fixedStats{}, zap.NewNop())
			rec := serve(t, r, "/readyz")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRouter_Catalog(t *testing.T) {
	t.Parallel()

	repo, err := repository.NewContentRepository("../../../assets/content.yaml")
	require.NoError(t, err)

	r := NewRouter(pingerFunc(func(context.Context) error { return nil }), repo, zap.NewNop())
	rec := serve(t, r, "/v1/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	var got repository.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, repo.Stats(), got)
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	r := NewRouter(pingerFunc(func(context.Context) error { return nil }), fixedStats{}, zap.NewNop())
	assert.Equal(t, http.StatusNotFound, serve(t, r, "/v1/unknown").Code)
}
