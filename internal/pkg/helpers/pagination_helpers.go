package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, perPage int) (offset uint64, limit uint64) {
	if perPage <= 0 || perPage > MaxPageSize {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	return uint64((page - 1) * perPage), uint64(perPage)
}

// TotalPages returns how many pages of perPage items hold total items
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}

// ParsePaginationParams extracts and validates page and per_page from the query string
func ParsePaginationParams(c *gin.Context) (page, perPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPageSize)))
	if err != nil || perPage <= 0 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage
}
