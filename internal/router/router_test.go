package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cx-tal-miterani/scenic-airways/internal/handlers"
	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRouter_Health(t *testing.T) {
	r := SetupRouter(handlers.NewHandler(new(mocks.MockDashboardService)), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_Preflight(t *testing.T) {
	r := SetupRouter(handlers.NewHandler(new(mocks.MockDashboardService)), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/dashboard/confirm", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RoutesToHandlers(t *testing.T) {
	svc := new(mocks.MockDashboardService)
	svc.On("Session", mock.Anything).Return(models.AuthSession{})
	svc.On("View", mock.Anything).Return(models.DashboardView{State: models.DashboardStateSearching})

	r := SetupRouter(handlers.NewHandler(svc), nil)

	for _, path := range []string{"/api/auth/session", "/api/dashboard"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	svc.AssertExpectations(t)
}

func TestRouter_WebSocketRoute(t *testing.T) {
	called := false
	ws := func(w http.ResponseWriter, r *http.Request) { called = true }
	r := SetupRouter(handlers.NewHandler(new(mocks.MockDashboardService)), ws)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	assert.True(t, called)
}
