package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/v1/inventory?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, PageSize: 20, Offset: 0}},
		{"page=3&limit=10", PaginationParams{Page: 3, PageSize: 10, Offset: 20}},
		{"page=-1&limit=500", PaginationParams{Page: 1, PageSize: 20, Offset: 0}},
		{"page=abc&limit=5", PaginationParams{Page: 1, PageSize: 5, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPaginationParams(contextWithQuery(tt.query)))
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	c := contextWithQuery("limit=7&show_used=true&bad=x")

	assert.Equal(t, 7, QueryInt(c, "limit", 10))
	assert.Equal(t, 10, QueryInt(c, "bad", 10))
	assert.Equal(t, 10, QueryInt(c, "missing", 10))
	assert.True(t, QueryBool(c, "show_used"))
	assert.False(t, QueryBool(c, "bad"))
}
