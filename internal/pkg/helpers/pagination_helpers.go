package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sharecrm/share/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// normalizePage falls back to the defaults for out-of-range values
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into squirrel Offset/Limit values
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	page, size = normalizePage(page, size)
	return uint64((page - 1) * size), uint64(size)
}

// NewPaginationInfo describes one page of totalItems. An empty list still has
// one page, and a page past the end reports the last page.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

// ParseListFilter reads page, size, search and status query parameters
func ParseListFilter(c *gin.Context) dto.ListFilter {
	page, size := normalizePage(queryInt(c, "page", DefaultPage), queryInt(c, "size", DefaultPageSize))
	return dto.ListFilter{
		Page:   page,
		Size:   size,
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
}

// NewPaginatedResponse pairs items with their pagination info
func NewPaginatedResponse(items interface{}, total int64, page, size int) dto.PaginatedResponse {
	return dto.PaginatedResponse{
		Items:      items,
		Pagination: NewPaginationInfo(total, page, size),
	}
}
