// Package marks tracks live document ranges keyed by tag identity. A scan
// seeds the tracker with one range per tag span; subsequent buffer edits
// shift the ranges so position lookups keep answering correctly while the
// user types.
package marks

import (
	"sort"
	"sync"

	"github.com/walteh/golivehtml/pkg/scanner"
)

// Category separates one consumer's ranges from another's within the same
// editor. Tag-identity ranges use CategoryTagID.
type Category string

// CategoryTagID is the category for tag-identity ranges.
const CategoryTagID Category = "tag-id"

// Range is one live tracked range carrying its tag identity.
type Range struct {
	ID    int
	Start int
	End   int
}

// Contains reports whether pos falls inside the range. Ranges are half-open:
// Start is covered, End is not.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// Tracker maintains live ranges per editor and category.
type Tracker interface {
	// MarkRanges replaces the editor's ranges in category with one range
	// per span.
	MarkRanges(editorID string, spans []scanner.TagSpan, category Category)

	// RangesAt returns the editor's ranges in category containing pos,
	// narrowest first, so the first result is the innermost tag covering
	// the position.
	RangesAt(editorID string, pos int, category Category) []Range

	// Has reports whether the editor has been seeded in category. An empty
	// RangesAt result is ambiguous on its own: it covers both a position
	// outside every range and an editor that was never marked.
	Has(editorID string, category Category) bool

	// ApplyEdit adjusts the editor's ranges in every category for a buffer
	// edit that replaced removed bytes at offset at with inserted bytes.
	ApplyEdit(editorID string, at, removed, inserted int)

	// Clear drops the editor's ranges in category.
	Clear(editorID string, category Category)
}

// InMemory is the default Tracker. All methods are safe for concurrent use.
type InMemory struct {
	mu      sync.Mutex
	editors map[string]map[Category][]Range
}

var _ Tracker = (*InMemory)(nil)

// NewInMemory creates an empty tracker.
func NewInMemory() *InMemory {
	return &InMemory{editors: make(map[string]map[Category][]Range)}
}

func (t *InMemory) MarkRanges(editorID string, spans []scanner.TagSpan, category Category) {
	ranges := make([]Range, 0, len(spans))
	for _, span := range spans {
		ranges = append(ranges, Range{ID: span.ID, Start: span.Start, End: span.End})
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	byCategory, ok := t.editors[editorID]
	if !ok {
		byCategory = make(map[Category][]Range)
		t.editors[editorID] = byCategory
	}
	byCategory[category] = ranges
}

func (t *InMemory) RangesAt(editorID string, pos int, category Category) []Range {
	t.mu.Lock()
	defer t.mu.Unlock()

	var hits []Range
	for _, r := range t.editors[editorID][category] {
		if r.Contains(pos) {
			hits = append(hits, r)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].End-hits[i].Start < hits[j].End-hits[j].Start
	})
	return hits
}

func (t *InMemory) Has(editorID string, category Category) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.editors[editorID][category]
	return ok
}

func (t *InMemory) ApplyEdit(editorID string, at, removed, inserted int) {
	delta := inserted - removed
	editEnd := at + removed

	t.mu.Lock()
	defer t.mu.Unlock()

	for category, ranges := range t.editors[editorID] {
		kept := ranges[:0]
		for _, r := range ranges {
			switch {
			case r.End <= at:
				// Entirely before the edit.
				kept = append(kept, r)
			case r.Start >= editEnd:
				// Entirely after: shift both ends.
				r.Start += delta
				r.End += delta
				kept = append(kept, r)
			case r.Start <= at && r.End >= editEnd:
				// Edit is inside the range: the range grows or shrinks.
				r.End += delta
				kept = append(kept, r)
			default:
				// The edit tore through a range boundary; the range no
				// longer corresponds to a tag and is dropped.
			}
		}
		t.editors[editorID][category] = kept
	}
}

func (t *InMemory) Clear(editorID string, category Category) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.editors[editorID], category)
}
