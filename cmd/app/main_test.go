package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"travelmate/internal/api/controllers"
	"travelmate/internal/config"
)

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	cfg := &config.Config{
		Auth:      config.AuthConfig{JWTSecret: "secret"},
		RateLimit: config.RateLimitConfig{RPS: 1, Burst: 1},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	logger := zap.NewNop()
	r := ProvideRouter(cfg, logger,
		controllers.NewItineraryController(nil, logger),
		controllers.NewTravelPlanController(nil, nil, logger))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans/summary", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
