package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"dailyrewards/internal/adapter/api/handler"
	"dailyrewards/internal/adapter/api/middleware"
	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/infrastructure/firebase"
	"dailyrewards/internal/infrastructure/ratelimit"
	"dailyrewards/internal/usecase"
	"dailyrewards/pkg/response"
)

type verifier struct{}

func (verifier) VerifyToken(_ context.Context, token string) (*firebase.Identity, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return &firebase.Identity{UID: "uid-1"}, nil
}

type users struct{}

func (users) SyncProfile(_ context.Context, id string, _ usecase.SyncProfileInput) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}

func (users) GetUserProfile(_ context.Context, id string) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}

type login struct{}

func (login) ProcessLogin(context.Context, string) (*usecase.LoginResult, error) {
	return &usecase.LoginResult{}, nil
}

func (login) GetLoginStatus(context.Context, string) (*usecase.LoginStatus, error) {
	return &usecase.LoginStatus{}, nil
}

type levels struct{}

func (levels) GetLevel(context.Context, string) (*usecase.LevelOverview, error) {
	return &usecase.LevelOverview{Level: entity.NewUserLevel("uid-1")}, nil
}

func newServer() *echo.Echo {
	handler.Setup(handler.Dependencies{
		Users:      users{},
		DailyLogin: login{},
		Levels:     levels{},
		Storage:    "postgres",
	})

	e := echo.New()
	e.HTTPErrorHandler = response.ErrorHandler
	Setup(e, middleware.NewAuthMiddleware(verifier{}), middleware.NewRateLimitMiddleware(ratelimit.NewRateLimiter(nil, nil)))
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRequireAuthentication(t *testing.T) {
	e := newServer()

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/v1/level", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/v1/level", "expired").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/level", "valid").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/users/me", "valid").Code)
}

func TestDailyLoginIsRateLimited(t *testing.T) {
	e := newServer()

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/v1/login/daily", "valid").Code)
	}

	rec := do(e, http.MethodPost, "/v1/login/daily", "valid")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1800", rec.Header().Get("Retry-After"))

	// Other endpoints use their own budget.
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/login/status", "valid").Code)
}

func TestWebSocketRouteSkippedWithoutManager(t *testing.T) {
	e := newServer()

	for _, r := range e.Routes() {
		assert.NotEqual(t, "/v1/ws", r.Path)
	}
}
