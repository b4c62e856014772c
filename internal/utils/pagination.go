package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPerPage is the default number of items per page
const DefaultPerPage = 10

// MaxPerPage is the maximum number of items per page
const MaxPerPage = 100

// maxOffset caps how deep a page translates into a row offset. Pages past
// this point cannot address real data, and the multiplication in Offset()
// must never wrap.
const maxOffset = math.MaxInt32

// PaginationRequest holds pagination parameters
type PaginationRequest struct {
	Page    int
	PerPage int
}

// Pagination holds pagination metadata
type Pagination struct {
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
}

// Offset returns the row offset for the requested page
func (p PaginationRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ParsePagination extracts pagination parameters from the gin context and
// rejects out-of-range values. Used by the machine-facing API.
func ParsePagination(ctx *gin.Context) (PaginationRequest, error) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return PaginationRequest{}, fmt.Errorf("%w: page must be greater than or equal to 1", ErrValidation)
	}

	perPage, err := strconv.Atoi(ctx.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 || perPage > MaxPerPage {
		return PaginationRequest{}, fmt.Errorf("%w: per_page must be between 1 and %d", ErrValidation, MaxPerPage)
	}

	if page > maxOffset/perPage+1 {
		return PaginationRequest{}, fmt.Errorf("%w: page is out of range", ErrValidation)
	}

	return PaginationRequest{Page: page, PerPage: perPage}, nil
}

// ClampedPagination extracts pagination parameters from the gin context and
// silently clamps out-of-range values. Used by the human-facing dashboard.
func ClampedPagination(ctx *gin.Context) PaginationRequest {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(ctx.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	if page > maxOffset/perPage+1 {
		page = 1
	}

	return PaginationRequest{Page: page, PerPage: perPage}
}

// NewPagination builds the pagination metadata for a response
func NewPagination(req PaginationRequest, totalRecords int64) Pagination {
	return Pagination{
		Page:         req.Page,
		PerPage:      req.PerPage,
		TotalRecords: totalRecords,
		TotalPages:   calculateTotalPages(totalRecords, req.PerPage),
	}
}

// calculateTotalPages calculates the total number of pages
func calculateTotalPages(totalRecords int64, perPage int) int {
	if perPage == 0 {
		return 0
	}

	totalPages := int(totalRecords) / perPage
	if int(totalRecords)%perPage > 0 {
		totalPages++
	}

	return totalPages
}
