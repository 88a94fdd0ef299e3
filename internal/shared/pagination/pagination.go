// Package pagination resolves page numbers and builds the list of page links
// shown under every listing.
package pagination

import "strconv"

// Gap marks a discontinuity in a page range ("…" in the UI).
const Gap = 0

const (
	DefaultOnEachSide = 2
	DefaultOnEnds     = 1
)

// PageRange returns the page numbers to render as links for current out of numPages.
//
// The first and last onEnds pages are always present, plus onEachSide pages on
// both sides of current. Gap is inserted wherever numbers are skipped.
//
//	PageRange(20, 10, 2, 1) -> [1 0 8 9 10 11 12 0 20]
func PageRange(numPages, current, onEachSide, onEnds int) []int {
	if numPages < 1 {
		return nil
	}

	seen := make(map[int]bool, 2*onEnds+2*onEachSide+1)
	out := make([]int, 0, 2*onEnds+2*onEachSide+3)
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	for n := 1; n <= min(onEnds, numPages); n++ {
		add(n)
	}

	start := max(current-onEachSide, onEnds+1)
	end := min(current+onEachSide, numPages-onEnds)

	if start > onEnds+1 {
		out = append(out, Gap)
	}
	for n := start; n <= end; n++ {
		add(n)
	}
	if end < numPages-onEnds {
		out = append(out, Gap)
	}

	for n := max(numPages-onEnds+1, end+1); n <= numPages; n++ {
		add(n)
	}
	return out
}

// Page is a resolved slice of a listing.
type Page struct {
	Number    int   `json:"number"`
	NumPages  int   `json:"num_pages"`
	PerPage   int   `json:"per_page"`
	Total     int64 `json:"total"`
	HasNext   bool  `json:"has_next"`
	HasPrev   bool  `json:"has_previous"`
	PageRange []int `json:"page_range"`
	Offset    int   `json:"-"`
	Limit     int   `json:"-"`
}

// ParseNumber reads a page query parameter. Anything that is not a positive integer is page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate clamps requested into [1, NumPages]. An empty listing still has one page.
func Paginate(total int64, perPage, requested int) Page {
	if perPage < 1 {
		perPage = 1
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:    number,
		NumPages:  numPages,
		PerPage:   perPage,
		Total:     total,
		HasNext:   number < numPages,
		HasPrev:   number > 1,
		PageRange: PageRange(numPages, number, DefaultOnEachSide, DefaultOnEnds),
		Offset:    (number - 1) * perPage,
		Limit:     perPage,
	}
}
