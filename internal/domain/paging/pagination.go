package paging

import "math"

// Pagination is the envelope returned next to every page of results.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasMore     bool  `json:"hasMore"`
	HasPrevious bool  `json:"hasPrevious"`
}

// New builds the envelope for a page. page and limit must already be >= 1.
func New(page, limit int, totalCount int64) Pagination {
	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasMore:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Offset is the number of rows to skip for page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// InRange reports whether page and limit are positive and the offset of page
// fits in an int.
func InRange(page, limit int) bool {
	return page >= 1 && limit >= 1 && page-1 <= math.MaxInt/limit
}
