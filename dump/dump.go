// Package dump renders a dom.Node tree to a human-readable string, for
// debugging and for the CLI's output. Grounded on
// original_source/saba_core/src/utils.rs (convert_dom_to_string /
// convert_dom_to_string_inner).
package dump

import (
	"strings"

	"github.com/lukehoban/saba-go/dom"
)

// Document renders root and its entire subtree, one node per line,
// indented two spaces per depth, first child before next sibling, with
// a leading blank line.
func Document(root *dom.Node) string {
	var b strings.Builder
	b.WriteByte('\n')
	writeNode(&b, root, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *dom.Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.String())
	b.WriteByte('\n')
	writeNode(b, n.FirstChild(), depth+1)
	writeNode(b, n.NextSibling(), depth)
}
