package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/config"
)

type stubHealthChecker struct {
	healthy bool
	err     error
}

func (s stubHealthChecker) IsHealthy(context.Context) (bool, error) {
	return s.healthy, s.err
}

func newTestService(health stubHealthChecker) *Service {
	return New(
		config.HTTP{Port: 0},
		testLogger(),
		health,
		&stubCategoryService{},
		&stubProductService{},
		&stubSaleService{},
		&stubDashboardService{},
	)
}

func TestServiceHealthz(t *testing.T) {
	t.Run("Should report ok when the database is reachable", func(t *testing.T) {
		svc := newTestService(stubHealthChecker{healthy: true})
		r := chi.NewRouter()
		svc.RegisterHandlers(r)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ok"`)
	})

	t.Run("Should report unavailable when the database is down", func(t *testing.T) {
		svc := newTestService(stubHealthChecker{healthy: false})
		r := chi.NewRouter()
		svc.RegisterHandlers(r)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServiceMetricsEndpoint(t *testing.T) {
	svc := newTestService(stubHealthChecker{healthy: true})
	r := chi.NewRouter()
	svc.RegisterHandlers(r)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
