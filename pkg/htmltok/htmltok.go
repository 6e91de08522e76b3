// Package htmltok turns raw HTML text into an ordered stream of node events
// with byte offsets into the original source. It is a thin adapter over
// golang.org/x/net/html's tokenizer: the tokenizer deals in tokens, the
// scanner deals in tag occurrences, and this package translates between the
// two while keeping exact source positions.
package htmltok

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// NodeType classifies a node event.
type NodeType int

const (
	// NodeElement is a start tag, end tag, or self-closing tag.
	NodeElement NodeType = iota + 1
	// NodeText is a run of character data.
	NodeText
	// NodeComment is an HTML comment.
	NodeComment
	// NodeDoctype is a doctype declaration.
	NodeDoctype
)

// Node is a single node event in document order.
type Node struct {
	// Type classifies the event. Only NodeElement events carry tag
	// structure; the other types are reported so consumers can account
	// for every byte of the source.
	Type NodeType

	// Name is the tag name as emitted by the tokenizer (lowercased).
	// Empty for text and comment events.
	Name string

	// SelfClosed is true for syntactically self-closed tags, e.g. <br/>.
	SelfClosed bool

	// Closing is true for end tags, e.g. </div>.
	Closing bool

	// Offset is the byte offset of the event's first character.
	Offset int

	// Length is the byte length of the event's source text.
	Length int
}

// IsElement reports whether the node is a tag event with a usable name. The
// doctype declaration counts: it carries the synthetic name "!doctype" and
// matches downstream as a void element, so a document's doctype gets a span
// like any other self-contained tag.
func (n Node) IsElement() bool {
	if n.Name == "" {
		return false
	}
	return n.Type == NodeElement || n.Type == NodeDoctype
}

// Tokenize produces the node event stream for text. Offsets are computed by
// accumulating the raw length of every token, so every event's Offset/Length
// pair indexes directly into text.
//
// Tokenization never fails: a malformed document simply produces a shorter
// stream. Anything other than a clean EOF is logged for visibility.
func Tokenize(ctx context.Context, text string) []Node {
	z := html.NewTokenizer(strings.NewReader(text))

	var nodes []Node
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != nil && err != io.EOF {
				zerolog.Ctx(ctx).Debug().
					Err(err).
					Int("offset", offset).
					Msg("tokenizer stopped before end of document")
			}
			break
		}

		raw := z.Raw()
		node := Node{Offset: offset, Length: len(raw)}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			node.Type = NodeElement
			node.Name = string(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			node.Type = NodeElement
			node.Name = string(name)
			node.Closing = true
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			node.Type = NodeElement
			node.Name = string(name)
			node.SelfClosed = true
		case html.DoctypeToken:
			node.Type = NodeDoctype
			node.Name = "!doctype"
		case html.CommentToken:
			node.Type = NodeComment
		default:
			node.Type = NodeText
		}

		nodes = append(nodes, node)
		offset += len(raw)
	}

	return nodes
}
