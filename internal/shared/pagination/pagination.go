// Package pagination provides the page/limit helpers shared by list endpoints.
package pagination

import "strconv"

const (
	// DefaultPage is used when the page query parameter is absent or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the limit query parameter is absent or invalid.
	DefaultLimit = 10
	// MaxLimit caps the page size to keep list queries bounded.
	MaxLimit = 100
)

// Meta describes one page of a paginated result set.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// Normalize clamps page and limit into their valid ranges.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Params parses the page and limit query strings, falling back to defaults.
func Params(pageStr, limitStr string) (page, limit int) {
	page, _ = strconv.Atoi(pageStr)
	limit, _ = strconv.Atoi(limitStr)
	return Normalize(page, limit)
}

// Offset returns the row offset for the given page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// MetaFor builds the page metadata for a total row count.
func MetaFor(total int64, page, limit int) Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}
