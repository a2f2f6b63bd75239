package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeoblyv/spider/pkg/httpserver"
	"github.com/yeoblyv/spider/pkg/logger"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	httpserver.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()
	ok := httpserver.Check{Name: "ok", Fn: func(context.Context) error { return nil }}
	failing := httpserver.Check{Name: "db", Fn: func(context.Context) error { return errors.New("down") }}

	tests := []struct {
		name   string
		checks []httpserver.Check
		code   int
		body   string
	}{
		{"no checks", nil, http.StatusOK, "READY"},
		{"all pass", []httpserver.Check{ok, ok}, http.StatusOK, "READY"},
		{"one fails", []httpserver.Check{ok, failing}, http.StatusServiceUnavailable, "NOT_READY"},
		{"nil func skipped", []httpserver.Check{{Name: "empty"}}, http.StatusOK, "READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h := httpserver.ReadinessHandler(logger.Discard(), tt.checks...)
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		httpserver.ReadinessHandler(nil, failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("check sees request context", func(t *testing.T) {
		t.Parallel()
		type key struct{}
		var seen any
		check := httpserver.Check{Name: "ctx", Fn: func(ctx context.Context) error {
			seen = ctx.Value(key{})
			return nil
		}}
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		req = req.WithContext(context.WithValue(req.Context(), key{}, "marker"))
		httpserver.ReadinessHandler(nil, check).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "marker", seen)
	})
}
