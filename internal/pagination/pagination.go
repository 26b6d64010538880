// Package pagination validates raw page/limit query values coming from list endpoints.
// Validation never fails hard: callers always get usable numbers back and decide
// themselves whether an invalid result becomes a 400.
package pagination

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// Error messages surfaced to API clients. Kept stable, clients match on them.
var (
	ErrMsgPage     = "Page must be a positive integer"
	ErrMsgLimit    = "Limit must be a positive integer"
	ErrMsgLimitMax = fmt.Sprintf("Limit cannot exceed %d", MaxLimit)
)

// Result is the outcome of Validate. Page and Limit always hold safe values,
// even when Valid is false.
type Result struct {
	Valid bool   `json:"valid"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Error string `json:"error,omitempty"`
}

// Offset returns the zero-based row offset for the validated window.
// It saturates at math.MaxInt for pages too far out to address.
func (r Result) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Validate converts raw page and limit strings into bounded integers.
// Page is checked first; if it fails, limit is never inspected and both fall back to defaults.
func Validate(pageStr, limitStr string) Result {
	page, ok := parsePositive(pageStr, DefaultPage)
	if !ok {
		return Result{Valid: false, Page: DefaultPage, Limit: DefaultLimit, Error: ErrMsgPage}
	}

	limit, ok := parsePositive(limitStr, DefaultLimit)
	if !ok {
		return Result{Valid: false, Page: page, Limit: DefaultLimit, Error: ErrMsgLimit}
	}
	if limit > MaxLimit {
		return Result{Valid: false, Page: page, Limit: DefaultLimit, Error: ErrMsgLimitMax}
	}

	return Result{Valid: true, Page: page, Limit: limit}
}

// TotalPages returns how many pages of size limit are needed for total items.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// parsePositive returns def for blank input, otherwise the parsed value when it is an integer >= 1.
func parsePositive(raw string, def int) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, true
	}
	if strings.Contains(s, ".") {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
