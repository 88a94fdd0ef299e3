package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"borntoday-backend/internal/shared/pagination"
)

const gap = pagination.Gap

func TestPageRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		numPages   int
		current    int
		onEachSide int
		onEnds     int
		want       []int
	}{
		{"middle of twenty", 20, 10, 2, 1, []int{1, gap, 8, 9, 10, 11, 12, gap, 20}},
		{"single page", 1, 1, 2, 1, []int{1}},
		{"first page", 20, 1, 2, 1, []int{1, 2, 3, gap, 20}},
		{"last page", 20, 20, 2, 1, []int{1, gap, 18, 19, 20}},
		{"window touches start", 20, 3, 2, 1, []int{1, 2, 3, 4, 5, gap, 20}},
		{"window touches end", 20, 18, 2, 1, []int{1, gap, 16, 17, 18, 19, 20}},
		{"small total has no gaps", 5, 3, 2, 1, []int{1, 2, 3, 4, 5}},
		{"two pages", 2, 2, 2, 1, []int{1, 2}},
		{"wider ends", 30, 15, 1, 2, []int{1, 2, gap, 14, 15, 16, gap, 29, 30}},
		{"no pages", 0, 1, 2, 1, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.PageRange(tt.numPages, tt.current, tt.onEachSide, tt.onEnds)
			assert.Equal(t, tt.want, got)
			assertNoDuplicatePages(t, got)
		})
	}
}

func TestPageRange_NeverDuplicates(t *testing.T) {
	t.Parallel()

	for numPages := 1; numPages <= 15; numPages++ {
		for current := 1; current <= numPages; current++ {
			got := pagination.PageRange(numPages, current, 2, 1)
			assertNoDuplicatePages(t, got)
			assert.Equal(t, 1, got[0])
			assert.Equal(t, numPages, got[len(got)-1])
			assert.Contains(t, got, current)
		}
	}
}

func assertNoDuplicatePages(t *testing.T, pages []int) {
	t.Helper()
	seen := map[int]bool{}
	for _, p := range pages {
		if p == gap {
			continue
		}
		assert.False(t, seen[p], "page %d repeated in %v", p, pages)
		seen[p] = true
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	p := pagination.Paginate(45, 20, 2)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 3, p.NumPages)
	assert.Equal(t, 20, p.Offset)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := pagination.Paginate(45, 20, 99)
	assert.Equal(t, 3, last.Number)
	assert.Equal(t, 40, last.Offset)
	assert.False(t, last.HasNext)

	empty := pagination.Paginate(0, 20, 1)
	assert.Equal(t, 1, empty.NumPages)
	assert.Equal(t, 0, empty.Offset)
	assert.Equal(t, []int{1}, empty.PageRange)
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, pagination.ParseNumber("3"))
	assert.Equal(t, 1, pagination.ParseNumber(""))
	assert.Equal(t, 1, pagination.ParseNumber("abc"))
	assert.Equal(t, 1, pagination.ParseNumber("-4"))
	assert.Equal(t, 1, pagination.ParseNumber("0"))
}
