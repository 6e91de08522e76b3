package scanner

import (
	"strings"

	"github.com/walteh/golivehtml/pkg/htmltok"
)

// voidElements are the names that never take a matching close tag.
var voidElements = map[string]struct{}{
	"!doctype": {},
	"area":     {},
	"base":     {},
	"basefont": {},
	"br":       {},
	"wbr":      {},
	"col":      {},
	"frame":    {},
	"hr":       {},
	"img":      {},
	"input":    {},
	"isindex":  {},
	"link":     {},
	"meta":     {},
	"param":    {},
	"embed":    {},
}

// IsVoidOrSelfClosed reports whether node needs no matching close tag: it has
// no name, it used self-closing syntax, or its name is a known void element.
// The check is also used to drop stray close tags for void elements, e.g. a
// </input> that some tool emitted.
func IsVoidOrSelfClosed(node htmltok.Node) bool {
	if node.Name == "" || node.SelfClosed {
		return true
	}
	_, ok := voidElements[strings.ToLower(node.Name)]
	return ok
}
