package pagination_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/pagination"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantValid bool
		wantPage  int
		wantLimit int
		wantErr   string
	}{
		{"both_empty_defaults", "", "", true, 1, 12, ""},
		{"whitespace_is_empty", "   ", "\t", true, 1, 12, ""},
		{"explicit_values", "3", "25", true, 3, 25, ""},
		{"trimmed_values", " 2 ", " 50 ", true, 2, 50, ""},
		{"limit_at_max", "1", "100", true, 1, 100, ""},
		{"page_only", "7", "", true, 7, 12, ""},
		{"limit_only", "", "5", true, 1, 5, ""},

		{"page_non_numeric", "abc", "10", false, 1, 12, pagination.ErrMsgPage},
		{"page_zero", "0", "10", false, 1, 12, pagination.ErrMsgPage},
		{"page_negative", "-1", "10", false, 1, 12, pagination.ErrMsgPage},
		{"page_decimal", "1.5", "10", false, 1, 12, pagination.ErrMsgPage},
		{"page_trailing_dot", "2.", "10", false, 1, 12, pagination.ErrMsgPage},
		{"page_mixed", "12abc", "10", false, 1, 12, pagination.ErrMsgPage},

		{"limit_non_numeric", "2", "many", false, 2, 12, pagination.ErrMsgLimit},
		{"limit_zero", "2", "0", false, 2, 12, pagination.ErrMsgLimit},
		{"limit_negative", "4", "-10", false, 4, 12, pagination.ErrMsgLimit},
		{"limit_decimal", "4", "10.0", false, 4, 12, pagination.ErrMsgLimit},
		{"limit_over_max", "5", "101", false, 5, 12, "Limit cannot exceed 100"},
		{"limit_way_over_max", "1", "100000", false, 1, 12, "Limit cannot exceed 100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pagination.Validate(tc.page, tc.limit)
			assert.Equal(t, tc.wantValid, got.Valid)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
			assert.Equal(t, tc.wantErr, got.Error)
		})
	}
}

func TestValidate_PageErrorWinsOverLimitError(t *testing.T) {
	// both invalid: only the page message is reported and limit is never looked at
	got := pagination.Validate("zero", "1000")
	assert.False(t, got.Valid)
	assert.Equal(t, "Page must be a positive integer", got.Error)
	assert.Equal(t, pagination.DefaultPage, got.Page)
	assert.Equal(t, pagination.DefaultLimit, got.Limit)
}

func TestValidate_ParsedValuesRoundTrip(t *testing.T) {
	for page := 1; page <= 20; page++ {
		for limit := 1; limit <= pagination.MaxLimit; limit += 9 {
			got := pagination.Validate(strconv.Itoa(page), strconv.Itoa(limit))
			if !got.Valid || got.Page != page || got.Limit != limit {
				t.Fatalf("page=%d limit=%d: unexpected %+v", page, limit, got)
			}
		}
	}
}

func TestResult_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Validate("1", "12").Offset())
	assert.Equal(t, 24, pagination.Validate("3", "12").Offset())
	assert.Equal(t, 0, pagination.Validate("bad", "").Offset())
}

func TestResult_OffsetSaturatesForHugePages(t *testing.T) {
	got := pagination.Validate(strconv.Itoa(math.MaxInt/10+1), "100")
	require.True(t, got.Valid)
	assert.Equal(t, math.MaxInt, got.Offset())

	got = pagination.Validate(strconv.Itoa(math.MaxInt), "1")
	require.True(t, got.Valid)
	assert.Equal(t, math.MaxInt-1, got.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, pagination.TotalPages(0, 12))
	assert.Equal(t, 1, pagination.TotalPages(12, 12))
	assert.Equal(t, 2, pagination.TotalPages(13, 12))
	assert.Equal(t, 0, pagination.TotalPages(10, 0))
}
