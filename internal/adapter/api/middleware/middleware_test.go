package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyrewards/internal/infrastructure/firebase"
	"dailyrewards/internal/infrastructure/ratelimit"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (*firebase.Identity, error) {
	if token != "good-token" {
		return nil, errors.New("token expired")
	}
	return &firebase.Identity{UID: "uid-1", Email: "p@example.com", Name: "Player"}, nil
}

func echoUID(c echo.Context) error {
	return c.String(http.StatusOK, c.Get(ContextUID).(string)+"|"+c.Get(ContextName).(string))
}

func serve(h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuthMiddleware(stubVerifier{})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/level", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(auth.Authenticate(echoUID), req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "uid-1|Player", rec.Body.String())
			}
		})
	}
}

func TestAuthenticateQuery(t *testing.T) {
	auth := NewAuthMiddleware(stubVerifier{})

	rec := serve(auth.AuthenticateQuery(echoUID), httptest.NewRequest(http.MethodGet, "/v1/ws?token=good-token", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(auth.AuthenticateQuery(echoUID), httptest.NewRequest(http.MethodGet, "/v1/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitKeysByUser(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Limit{
		ratelimit.ActionGameAction: {MaxAttempts: 1, Window: time.Minute, Block: 5 * time.Minute},
	}, nil)
	mw := NewRateLimitMiddleware(limiter)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	call := func(uid string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/v1/roulette/spin", nil), rec)
		c.Set(ContextUID, uid)
		require.NoError(t, mw.Limit(ratelimit.ActionGameAction)(ok)(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, call("uid-1").Code)

	rec := call("uid-1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "300", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("uid-2").Code)
}
