package helpers

import (
	"net/http"
	"strconv"

	"eventsplatform/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultLimit = 15
	MaxLimit     = 100
)

// ParsePagination reads limit and offset from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = min(v, MaxLimit)
		}
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return domain.PaginationParams{Limit: limit, Offset: offset}
}

// PathID parses a positive integer path parameter. IDs are INTEGER columns, so
// values beyond int32 cannot name a row.
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
