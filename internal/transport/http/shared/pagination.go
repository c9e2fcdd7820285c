package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	limit := defaultLimit
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Limit: limit, Offset: offset}
}

// ParseMonthYear reads optional month/year query parameters. Both must be
// present for a filter to apply; zero values mean "no filter".
func ParseMonthYear(r *http.Request) (month, year int) {
	rawMonth := r.URL.Query().Get("month")
	rawYear := r.URL.Query().Get("year")
	if rawMonth == "" || rawYear == "" {
		return 0, 0
	}
	m, err := strconv.Atoi(rawMonth)
	if err != nil || m < 1 || m > 12 {
		return 0, 0
	}
	y, err := strconv.Atoi(rawYear)
	if err != nil || y < 1 {
		return 0, 0
	}
	return m, y
}
