package http

import (
	"net/url"
	"strconv"
	"strings"

	"flowallet/internal/core"
)

// parseFilter builds a search filter from query or form values. An
// unparseable type value is treated as no type filter so a half-typed
// search never errors.
func parseFilter(values url.Values) core.Filter {
	f := core.Filter{
		Category: sanitizeInput(values.Get("category")),
		Date:     sanitizeInput(values.Get("date")),
	}
	if v := strings.TrimSpace(values.Get("type")); v != "" {
		if t, err := core.ParseType(v); err == nil {
			f.Type = &t
		}
	}
	return f
}

// parseIDs collects the checked row ids from a delete form. Malformed
// values are skipped.
func parseIDs(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
