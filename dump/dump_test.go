package dump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukehoban/saba-go/dom"
)

func TestDocumentLeadingNewline(t *testing.T) {
	root := dom.NewDocumentNode()
	out := Document(root)
	assert.True(t, strings.HasPrefix(out, "\n"))
}

func TestDocumentIndentsChildrenByDepth(t *testing.T) {
	root := dom.NewDocumentNode()
	html := dom.NewElementNode("html", nil)
	body := dom.NewElementNode("body", nil)
	root.SetFirstChild(html)
	html.SetParent(root)
	html.SetFirstChild(body)
	body.SetParent(html)

	out := Document(root)
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	assert.Equal(t, "Document", lines[0])
	assert.Equal(t, "  Element(html)", lines[1])
	assert.Equal(t, "    Element(body)", lines[2])
}

func TestDocumentWalksNextSiblingAtSameDepth(t *testing.T) {
	root := dom.NewDocumentNode()
	p1 := dom.NewElementNode("p", nil)
	p2 := dom.NewElementNode("p", nil)
	root.SetFirstChild(p1)
	p1.SetParent(root)
	p1.SetNextSibling(p2)
	p2.SetParent(root)
	p2.SetPreviousSibling(p1)
	root.SetLastChild(p2)

	out := Document(root)
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	assert.Equal(t, "Document", lines[0])
	assert.Equal(t, "  Element(p)", lines[1])
	assert.Equal(t, "  Element(p)", lines[2])
}

func TestDocumentTextNode(t *testing.T) {
	root := dom.NewDocumentNode()
	text := dom.NewTextNode('h')
	root.SetFirstChild(text)
	text.SetParent(root)

	out := Document(root)
	assert.Contains(t, out, `Text("h")`)
}
