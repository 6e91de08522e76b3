// Package scanner matches the node event stream of an HTML document into tag
// spans with stable numeric identities. The matcher is deliberately tolerant:
// editors hand it half-typed markup all day, so unmatched and unclosed tags
// are bounded and reported instead of failing the scan.
package scanner

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/golivehtml/pkg/htmltok"
)

// TagSpan is a matched (or synthetically closed) tag occurrence.
type TagSpan struct {
	// Name is the element's tag name.
	Name string
	// ID is a positive identity unique within one scan, assigned in order
	// of span closure. Closure order is not document order for nested
	// structures, so IDs are not sorted by Start.
	ID int
	// Start is the offset of the opening tag's '<'.
	Start int
	// End is one past the last character covered by the span.
	End int
}

// IssueKind classifies a non-fatal scan problem.
type IssueKind int

const (
	// IssueUnmatchedClose is a closing tag with no open tag to match.
	IssueUnmatchedClose IssueKind = iota + 1
	// IssueUnclosedTag is an open tag still unclosed at end of document.
	IssueUnclosedTag
)

// Issue is a non-fatal problem found while scanning. The scan always
// completes; issues describe what it had to tolerate along the way.
type Issue struct {
	Kind   IssueKind
	Name   string
	Offset int
}

// openTag is an in-progress entry on the matching stack.
type openTag struct {
	name   string
	start  int
	length int
	// unclosedLength bounds a synthetic closure if the tag is never
	// properly closed. Zero means not yet bounded.
	unclosedLength int
}

// Scan consumes the node stream for text and returns tag spans sorted
// ascending by start offset, plus any problems tolerated along the way.
func Scan(ctx context.Context, text string, nodes []htmltok.Node) ([]TagSpan, []Issue) {
	var (
		spans  []TagSpan
		issues []Issue
		stack  []openTag
	)
	tagID := 1

	for _, node := range nodes {
		if !node.IsElement() {
			continue
		}

		// A stray closer for a void element carries no structure at all.
		if node.Closing && IsVoidOrSelfClosed(node) {
			continue
		}

		// Bound the current top-of-stack entry the first time anything
		// follows it. html/body run to end of document; everything else
		// is cut off at the next tag so an unclosed inline tag does not
		// swallow the rest of the file.
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.unclosedLength == 0 {
				if extendsToEndOfDocument(top.name) {
					top.unclosedLength = len(text) - top.start
				} else {
					top.unclosedLength = node.Offset - top.start
				}
			}
		}

		switch {
		case IsVoidOrSelfClosed(node):
			spans = append(spans, TagSpan{
				Name:  node.Name,
				ID:    tagID,
				Start: node.Offset,
				End:   node.Offset + node.Length,
			})
			tagID++

		case node.Closing:
			i := len(stack) - 1
			for i >= 0 && !strings.EqualFold(stack[i].name, node.Name) {
				i--
			}
			if i < 0 {
				zerolog.Ctx(ctx).Warn().
					Str("tag", node.Name).
					Int("offset", node.Offset).
					Msg("unmatched close tag")
				issues = append(issues, Issue{
					Kind:   IssueUnmatchedClose,
					Name:   node.Name,
					Offset: node.Offset,
				})
				continue
			}
			// Splice rather than pop: entries above the match stay on
			// the stack as tolerated unclosed intermediates.
			open := stack[i]
			stack = append(stack[:i], stack[i+1:]...)
			spans = append(spans, TagSpan{
				Name:  open.name,
				ID:    tagID,
				Start: open.start,
				End:   node.Offset + node.Length,
			})
			tagID++

		default:
			stack = append(stack, openTag{
				name:   node.Name,
				start:  node.Offset,
				length: node.Length,
			})
		}
	}

	// Drain whatever never closed, most recently opened first.
	for len(stack) > 0 {
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		end := open.start + open.length
		if open.unclosedLength > 0 {
			end = open.start + open.unclosedLength
		}
		issues = append(issues, Issue{
			Kind:   IssueUnclosedTag,
			Name:   open.name,
			Offset: open.start,
		})
		spans = append(spans, TagSpan{
			Name:  open.name,
			ID:    tagID,
			Start: open.start,
			End:   end,
		})
		tagID++
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	return spans, issues
}

// extendsToEndOfDocument reports whether an unclosed tag of this name should
// cover everything through end of document instead of being bounded by the
// next tag. The list is a fixed exception for root-level containers.
func extendsToEndOfDocument(name string) bool {
	switch strings.ToLower(name) {
	case "html", "body":
		return true
	}
	return false
}
