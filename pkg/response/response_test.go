package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dailyrewards/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorMapsAppErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already claimed", apperrors.AlreadyClaimed("roulette", nil), http.StatusConflict, "ALREADY_CLAIMED"},
		{"invalid input", apperrors.InvalidInput("bad run", nil), http.StatusBadRequest, "INVALID_INPUT"},
		{"not found", apperrors.NotFound("Item", nil), http.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, Error(c, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestErrorSetsRetryAfter(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Error(c, apperrors.TooManyRequests("slow down", 90500*time.Millisecond)))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "91", rec.Header().Get("Retry-After"))
}

func TestErrorFormatsValidationErrors(t *testing.T) {
	type run struct {
		ReactionTimes []int `validate:"len=5"`
	}
	err := validator.New().Struct(run{ReactionTimes: []int{1, 2}})
	require.Error(t, err)

	c, rec := newContext()
	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "reactiontimes must contain exactly 5 values", body.Error.Message)
}

func TestPaginated(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Paginated(c, []string{"a", "b"}, 41, 2, 20))

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalPages)
	assert.Equal(t, int64(41), body.Data.Total)
}
