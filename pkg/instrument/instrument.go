// Package instrument rewrites document text so every scanned tag carries its
// identity as an attribute. The attribute syntax is a wire contract with
// live-preview consumers: name, single quotes, and placement immediately
// after the tag name must match exactly.
package instrument

import (
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/walteh/golivehtml/pkg/scanner"
)

// AttrName is the injected identity attribute's name.
const AttrName = "data-brackets-id"

var injectedAttr = regexp.MustCompile(` ` + AttrName + `='[0-9]+'`)

// InstrumentedHTML returns text with one identity attribute inserted
// immediately after each span's tag name. The input span list is never
// mutated; the generator works on its own sorted copy so a cached snapshot
// stays intact.
func InstrumentedHTML(text string, spans []scanner.TagSpan) string {
	work := slices.Clone(spans)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].Start < work[j].Start
	})

	var b strings.Builder
	b.Grow(len(text) + len(work)*(len(AttrName)+8))

	// Insertion points are strictly increasing: each one sits just past a
	// span's own '<name', and spans are sorted by start. Writing left to
	// right keeps every later offset valid without explicit drift math.
	cursor := 0
	for _, span := range work {
		at := span.Start + len(span.Name) + 1
		if at < cursor || at > len(text) {
			continue
		}
		b.WriteString(text[cursor:at])
		b.WriteString(" ")
		b.WriteString(AttrName)
		b.WriteString("='")
		b.WriteString(strconv.Itoa(span.ID))
		b.WriteString("'")
		cursor = at
	}
	b.WriteString(text[cursor:])

	return b.String()
}

// Strip removes every injected identity attribute from text. Stripping an
// instrumented document recovers the original byte for byte.
func Strip(text string) string {
	return injectedAttr.ReplaceAllString(text, "")
}
