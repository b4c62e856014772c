package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return ctx
}

func TestParsePagination(t *testing.T) {
	req, err := ParsePagination(paginationContext("page=3&per_page=25"))
	assert.NoError(t, err)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 25, req.PerPage)
	assert.Equal(t, 50, req.Offset())

	// Defaults apply when parameters are absent
	req, err = ParsePagination(paginationContext(""))
	assert.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, DefaultPerPage, req.PerPage)
}

func TestParsePagination_Rejects(t *testing.T) {
	for _, query := range []string{"page=0", "page=-2", "page=abc", "per_page=0", "per_page=101"} {
		_, err := ParsePagination(paginationContext(query))
		assert.Error(t, err, "query %q should be rejected", query)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestParsePagination_RejectsOverflowingOffset(t *testing.T) {
	// A page this deep would wrap the offset multiplication to a negative
	// value, which the query layer silently drops, serving page 1's rows
	// under a fabricated page number.
	_, err := ParsePagination(paginationContext("page=4611686018427387904&per_page=100"))
	assert.ErrorIs(t, err, ErrValidation)

	// The deepest page whose offset still fits is accepted
	req, err := ParsePagination(paginationContext("page=21474837&per_page=100"))
	assert.NoError(t, err)
	assert.Greater(t, req.Offset(), 0)
}

func TestClampedPagination(t *testing.T) {
	tests := []struct {
		query   string
		page    int
		perPage int
	}{
		{"page=2&per_page=50", 2, 50},
		{"page=0", 1, DefaultPerPage},
		{"page=abc", 1, DefaultPerPage},
		{"page=4611686018427387904", 1, DefaultPerPage},
		{"per_page=500", 1, DefaultPerPage},
		{"per_page=0", 1, DefaultPerPage},
		{"", 1, DefaultPerPage},
	}

	for _, tt := range tests {
		req := ClampedPagination(paginationContext(tt.query))
		assert.Equal(t, tt.page, req.Page, "query %q", tt.query)
		assert.Equal(t, tt.perPage, req.PerPage, "query %q", tt.query)
	}
}

func TestNewPagination(t *testing.T) {
	meta := NewPagination(PaginationRequest{Page: 2, PerPage: 10}, 25)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, int64(25), meta.TotalRecords)
	assert.Equal(t, 3, meta.TotalPages)

	// Exact multiple
	meta = NewPagination(PaginationRequest{Page: 1, PerPage: 5}, 10)
	assert.Equal(t, 2, meta.TotalPages)

	// Empty set
	meta = NewPagination(PaginationRequest{Page: 1, PerPage: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
