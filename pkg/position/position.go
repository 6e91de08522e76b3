// Package position converts between byte offsets in document text and the
// line/column places humans and editors talk in.
package position

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Place is a zero-based line and column location.
type Place struct {
	Line      int
	Character int
}

// Range is a start/end pair of places.
type Range struct {
	Start Place
	End   Place
}

// RawPosition is a position in source text: the byte offset where some text
// occurs, plus the text itself so the position knows its own extent.
type RawPosition struct {
	// Offset is the byte offset in the source text.
	Offset int
	// Text is the source text at this position.
	Text string
}

// NewBasicPosition creates a RawPosition from text and its offset.
func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// Length returns the byte length of the text at this position.
func (p RawPosition) Length() int {
	return len(p.Text)
}

// End returns the offset one past the last byte of the position.
func (p RawPosition) End() int {
	return p.Offset + p.Length()
}

// HasRangeOverlapWith reports whether p and other cover any common offset.
// Zero-length positions overlap anything they touch, including either edge.
func (p RawPosition) HasRangeOverlapWith(other RawPosition) bool {
	if p.Length() == 0 {
		return p.Offset >= other.Offset && p.Offset <= other.End()
	}
	if other.Length() == 0 {
		return other.Offset >= p.Offset && other.Offset <= p.End()
	}
	return other.Offset < p.End() && other.End() > p.Offset
}

// GetLineAndColumn returns the zero-based line and column of the position's
// start in text. Columns count grapheme clusters, not bytes, so multi-byte
// and combining characters land where an editor would put the cursor.
func (p RawPosition) GetLineAndColumn(text string) (line, col int) {
	if p.Offset <= 0 {
		return 0, 0
	}

	offset := p.Offset
	if offset > len(text) {
		offset = len(text)
	}

	lastNewline := strings.LastIndexByte(text[:offset], '\n')
	line = strings.Count(text[:offset], "\n")

	colText := text[lastNewline+1 : offset]
	col, _ = textseg.TokenCount([]byte(colText), textseg.ScanGraphemeClusters)

	return line, col
}

// GetRange returns the line/column range covered by the position.
func (p RawPosition) GetRange(text string) Range {
	startLine, startCol := p.GetLineAndColumn(text)
	endLine, endCol := RawPosition{Offset: p.End()}.GetLineAndColumn(text)
	return Range{
		Start: Place{Line: startLine, Character: startCol},
		End:   Place{Line: endLine, Character: endCol},
	}
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}
