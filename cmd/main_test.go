package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Thenushan05/FishSpot-Backend/internal/auth"
	"github.com/Thenushan05/FishSpot-Backend/internal/handlers"
	"github.com/Thenushan05/FishSpot-Backend/internal/maintenance"
	"github.com/Thenushan05/FishSpot-Backend/internal/middleware"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	authService, err := auth.NewService()
	assert.NoError(t, err)

	// nil collections: these tests only exercise routing and middleware,
	// no request below reaches the database.
	authHandler := handlers.NewAuthHandler(authService, nil)
	vesselHandler := handlers.NewVesselHandler(nil)
	maintenanceHandler := handlers.NewMaintenanceHandler(nil, nil, nil, nil, maintenance.NewCalculator())

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	return newRouter(authHandler, vesselHandler, maintenanceHandler, authMiddleware, rateLimiter)
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/vessels"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/maintenance/rules"},
		{http.MethodGet, "/api/v1/maintenance/vessels/abc/summary"},
		{http.MethodPost, "/api/v1/maintenance/vessels/abc/complete-trip"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_LoginIsPublic(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{bad json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Past the auth middleware, rejected by the handler itself.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
