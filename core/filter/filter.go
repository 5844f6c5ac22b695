// Package filter decides which pages take part in ingestion.
package filter

// Filter excludes an explicit set of page numbers.
type Filter struct {
	skip map[int]struct{}
}

// New builds a Filter that rejects every page in skip.
func New(skip []int) *Filter {
	set := make(map[int]struct{}, len(skip))
	for _, n := range skip {
		set[n] = struct{}{}
	}
	return &Filter{skip: set}
}

// Include reports whether a page is retained. Only the page number is
// consulted: content-based exclusion happens after placeholder substitution,
// so a page with thin text that receives a placeholder is never lost here.
func (f *Filter) Include(pageNumber int, normalizedText string) bool {
	_, skipped := f.skip[pageNumber]
	return !skipped
}

// Len returns the size of the skip set.
func (f *Filter) Len() int { return len(f.skip) }
