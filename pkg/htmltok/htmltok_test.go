package htmltok_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/golivehtml/pkg/htmltok"
)

func TestTokenize_OffsetsCoverDocument(t *testing.T) {
	text := `<!DOCTYPE html><html><body><img src="x"><p>hi</p><!-- c --></body></html>`

	nodes := htmltok.Tokenize(context.Background(), text)
	require.NotEmpty(t, nodes)

	offset := 0
	for i, node := range nodes {
		assert.Equal(t, offset, node.Offset, "node %d must start where the previous node ended", i)
		assert.Positive(t, node.Length)
		offset += node.Length
	}
	assert.Equal(t, len(text), offset, "nodes must account for every byte")
}

func TestTokenize_NodeKinds(t *testing.T) {
	text := `<!DOCTYPE html><div class="a">text<br/></div><!-- done -->`

	nodes := htmltok.Tokenize(context.Background(), text)
	require.Len(t, nodes, 6)

	assert.Equal(t, htmltok.Node{Type: htmltok.NodeDoctype, Name: "!doctype", Offset: 0, Length: 15}, nodes[0])

	assert.Equal(t, htmltok.NodeElement, nodes[1].Type)
	assert.Equal(t, "div", nodes[1].Name)
	assert.False(t, nodes[1].Closing)
	assert.False(t, nodes[1].SelfClosed)
	assert.Equal(t, 15, nodes[1].Offset)
	assert.Equal(t, len(`<div class="a">`), nodes[1].Length)

	assert.Equal(t, htmltok.NodeText, nodes[2].Type)

	assert.Equal(t, "br", nodes[3].Name)
	assert.True(t, nodes[3].SelfClosed)

	assert.Equal(t, "div", nodes[4].Name)
	assert.True(t, nodes[4].Closing)

	assert.Equal(t, htmltok.NodeComment, nodes[5].Type)
}

func TestTokenize_LowercasesNames(t *testing.T) {
	nodes := htmltok.Tokenize(context.Background(), "<DIV></DIV>")
	require.Len(t, nodes, 2)
	assert.Equal(t, "div", nodes[0].Name)
	assert.Equal(t, "div", nodes[1].Name)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, htmltok.Tokenize(context.Background(), ""))
}

func TestNode_IsElement(t *testing.T) {
	assert.True(t, htmltok.Node{Type: htmltok.NodeElement, Name: "p"}.IsElement())
	assert.False(t, htmltok.Node{Type: htmltok.NodeElement}.IsElement())
	assert.False(t, htmltok.Node{Type: htmltok.NodeText}.IsElement())
	assert.True(t, htmltok.Node{Type: htmltok.NodeDoctype, Name: "!doctype"}.IsElement())
	assert.False(t, htmltok.Node{Type: htmltok.NodeDoctype}.IsElement())
}
