package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputIsDistinctFromNotFound(t *testing.T) {
	cause := stderrors.New("parse failure")
	err := fmt.Errorf("login: %w", InvalidInput("invalid date", cause))

	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)

	nf := NotFound("User", nil)
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsInvalidInput(nf))
	assert.Equal(t, "User not found", nf.Message)
	assert.Equal(t, http.StatusNotFound, nf.Status)
}

func TestAlreadyClaimed(t *testing.T) {
	err := AlreadyClaimed("roulette", nil)

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "roulette already completed today", err.Message)
	assert.True(t, Is(err, CodeAlreadyClaimed))
}

func TestTooManyRequestsCarriesRetryAfter(t *testing.T) {
	err := TooManyRequests("slow down", 30*time.Second)

	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "TOO_MANY_REQUESTS: slow down", err.Error())
}

func TestIsOnPlainError(t *testing.T) {
	assert.False(t, Is(stderrors.New("boom"), CodeInternal))
}
