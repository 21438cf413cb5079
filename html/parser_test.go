package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukehoban/saba-go/dom"
)

func parseHTML(t *testing.T, source string) *dom.Window {
	t.Helper()
	p := NewParser(NewTokenizer(source))
	return p.ConstructTree()
}

func newText(s string) *dom.Node {
	return &dom.Node{Type: dom.TextNode, Text: s}
}

// withChildren links children under parent, in order, and returns parent,
// so an expected sub-tree can be built for a structural comparison.
func withChildren(parent *dom.Node, children ...*dom.Node) *dom.Node {
	var prev *dom.Node
	for _, c := range children {
		c.SetParent(parent)
		if prev == nil {
			parent.SetFirstChild(c)
		} else {
			prev.SetNextSibling(c)
			c.SetPreviousSibling(prev)
		}
		parent.SetLastChild(c)
		prev = c
	}
	return parent
}

func assertNodesEqual(t *testing.T, want, got *dom.Node) {
	t.Helper()
	diff := cmp.Diff(want, got, cmp.Comparer(func(a, b *dom.Node) bool { return a.Equal(b) }))
	if diff != "" {
		assert.Fail(t, "node trees differ", diff)
	}
}

func TestParserEmptyDocument(t *testing.T) {
	w := parseHTML(t, "")
	require.Equal(t, dom.DocumentNode, w.Document().Type)
	assert.Nil(t, w.Document().FirstChild())
}

func TestParserSynthesizesHtmlHeadBody(t *testing.T) {
	w := parseHTML(t, "<html><head></head><body></body></html>")
	document := w.Document()

	htmlNode := document.FirstChild()
	require.NotNil(t, htmlNode)
	assertNodesEqual(t, withChildren(dom.NewElementNode("html", nil),
		dom.NewElementNode("head", nil), dom.NewElementNode("body", nil)), htmlNode)

	head := htmlNode.FirstChild()
	require.NotNil(t, head)
	assertNodesEqual(t, dom.NewElementNode("head", nil), head)

	body := head.NextSibling()
	require.NotNil(t, body)
	assertNodesEqual(t, dom.NewElementNode("body", nil), body)
}

func TestParserSynthesizesMissingStructure(t *testing.T) {
	// No explicit html/head/body at all: the tree constructor still
	// synthesizes all three once the first tag arrives. (Character
	// tokens before any tag are discarded by the Initial mode.)
	w := parseHTML(t, "<p>hello</p>")
	document := w.Document()

	htmlNode := document.FirstChild()
	require.NotNil(t, htmlNode)
	kind, ok := htmlNode.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Html, kind)

	head := htmlNode.FirstChild()
	require.NotNil(t, head)
	kindHead, ok := head.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Head, kindHead)

	body := head.NextSibling()
	require.NotNil(t, body)
	kindBody, ok := body.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Body, kindBody)

	p := body.FirstChild()
	require.NotNil(t, p)
	kindP, ok := p.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.P, kindP)

	text := p.FirstChild()
	require.NotNil(t, text)
	assert.Equal(t, dom.TextNode, text.Type)
	assert.Equal(t, "hello", text.Text)
}

func TestParserTextNode(t *testing.T) {
	w := parseHTML(t, "<html><head></head><body>text</body></html>")
	document := w.Document()

	htmlNode := document.FirstChild()
	require.NotNil(t, htmlNode)

	body := htmlNode.FirstChild().NextSibling()
	require.NotNil(t, body)
	assertNodesEqual(t, withChildren(dom.NewElementNode("body", nil), newText("text")), body)

	text := body.FirstChild()
	require.NotNil(t, text)
	assertNodesEqual(t, newText("text"), text)
}

func TestParserNestedPAndA(t *testing.T) {
	w := parseHTML(t, `<html><head></head><body><p><a foo=bar>text</a></p></body></html>`)
	document := w.Document()

	wantAttr := dom.Attribute{Name: "foo", Value: "bar"}
	wantA := func() *dom.Node {
		return withChildren(dom.NewElementNode("a", []dom.Attribute{wantAttr}), newText("text"))
	}

	body := document.FirstChild().FirstChild().NextSibling()
	require.NotNil(t, body)
	assertNodesEqual(t, withChildren(dom.NewElementNode("body", nil),
		withChildren(dom.NewElementNode("p", nil), wantA())), body)

	p := body.FirstChild()
	require.NotNil(t, p)
	assertNodesEqual(t, withChildren(dom.NewElementNode("p", nil), wantA()), p)

	a := p.FirstChild()
	require.NotNil(t, a)
	assertNodesEqual(t, wantA(), a)

	text := a.FirstChild()
	require.NotNil(t, text)
	assertNodesEqual(t, newText("text"), text)
}

func TestParserHeadOmittedDoesNotLoopForever(t *testing.T) {
	// A document that skips <head> entirely must not infinite-loop in
	// InHead re-seeing the same start tag.
	w := parseHTML(t, "<html><body>hi</body></html>")
	htmlNode := w.Document().FirstChild()
	require.NotNil(t, htmlNode)

	head := htmlNode.FirstChild()
	require.NotNil(t, head)
	kind, ok := head.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Head, kind)

	body := head.NextSibling()
	require.NotNil(t, body)
	kindBody, ok := body.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Body, kindBody)
}

func TestParserUnrecognizedHeadTagTriggersImplicitBody(t *testing.T) {
	w := parseHTML(t, "<html><head><meta></head><body>x</body></html>")
	htmlNode := w.Document().FirstChild()
	require.NotNil(t, htmlNode)
	head := htmlNode.FirstChild()
	require.NotNil(t, head)
	body := head.NextSibling()
	require.NotNil(t, body)
	kind, ok := body.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Body, kind)
}

func TestParserStyleAndScriptDriveTextMode(t *testing.T) {
	w := parseHTML(t, "<html><head><style>p{color:red}</style></head><body></body></html>")
	htmlNode := w.Document().FirstChild()
	require.NotNil(t, htmlNode)
	head := htmlNode.FirstChild()
	require.NotNil(t, head)

	style := head.FirstChild()
	require.NotNil(t, style)
	kind, ok := style.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Style, kind)

	text := style.FirstChild()
	require.NotNil(t, text)
	assert.Equal(t, dom.TextNode, text.Type)
	assert.Equal(t, "p{color:red}", text.Text)

	body := style.Parent().NextSibling()
	require.NotNil(t, body)
	kindBody, ok := body.ElementKind()
	require.True(t, ok)
	assert.Equal(t, dom.Body, kindBody)
}

func TestParserRepeatedParsingIsDeterministic(t *testing.T) {
	source := `<html><head></head><body><h1>Title</h1><p>para</p></body></html>`
	w1 := parseHTML(t, source)
	w2 := parseHTML(t, source)
	assertNodesEqual(t, w1.Document(), w2.Document())
}

func TestParserBackLinksAgreeWithForwardLinks(t *testing.T) {
	w := parseHTML(t, "<html><head></head><body><p>a</p><p>b</p></body></html>")
	htmlNode := w.Document().FirstChild()
	body := htmlNode.FirstChild().NextSibling()

	firstP := body.FirstChild()
	require.NotNil(t, firstP)
	secondP := firstP.NextSibling()
	require.NotNil(t, secondP)

	assert.Same(t, body, firstP.Parent())
	assert.Same(t, firstP, secondP.PreviousSibling())
	assert.Same(t, secondP, body.LastChild())
}
