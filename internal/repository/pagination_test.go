package repository_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/pagination"
	"github.com/maxviazov/job-portal/internal/repository"
)

func TestPageFrom_KeepsRequestedPage(t *testing.T) {
	p := repository.PageFrom(pagination.Validate("3", "12"))
	assert.Equal(t, repository.Page{Limit: 12, Offset: 24, Index: 3}, p)
	assert.Equal(t, 3, p.Number())
}

func TestPageFrom_HugePageDoesNotWrap(t *testing.T) {
	huge := math.MaxInt/10 + 1
	res := pagination.Validate(strconv.Itoa(huge), "100")
	require.True(t, res.Valid)

	p := repository.PageFrom(res)
	assert.Equal(t, huge, p.Number())
	assert.Equal(t, math.MaxInt, p.Offset)
	assert.Empty(t, repository.Window([]int{1, 2, 3}, p))
}

func TestPage_NumberFromOffset(t *testing.T) {
	cases := []struct {
		page repository.Page
		want int
	}{
		{repository.Page{Limit: 100}, 1},
		{repository.Page{Limit: 100, Offset: 200}, 3},
		{repository.Page{Limit: 0, Offset: 50}, 1},
		{repository.Page{Limit: 10, Offset: -5}, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.page.Number(), "%+v", tc.page)
	}
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, repository.Window(items, repository.Page{Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, repository.Window(items, repository.Page{Limit: 2, Offset: 4}))
	assert.Equal(t, items, repository.Window(items, repository.Page{}))
	assert.Empty(t, repository.Window(items, repository.Page{Limit: 2, Offset: 5}))
	assert.Empty(t, repository.Window(items, repository.Page{Limit: 2, Offset: -1}))
}
