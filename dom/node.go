// Package dom provides the Document Object Model tree structure used by
// the HTML tree constructor: a graph of Document, Element, and Text
// nodes linked by parent/first-child/last-child/next-sibling/previous-
// sibling references.
//
// Forward links (first-child, next-sibling) are the tree's real shape;
// back-links (parent, last-child, previous-sibling) and the Window
// back-reference are conceptually weak — they exist only to let a node
// find its way back up or sideways without owning what they point at.
// Go's garbage collector makes that distinction moot for memory safety,
// but the invariants the back-links must satisfy (the Set* mutators and
// node_test.go) still come straight from that shape.
package dom

import "fmt"

// NodeType is the discriminant of the NodeKind sum type: a Node is
// exactly one of Document, Element, or Text.
type NodeType int

const (
	// DocumentNode is the root of a DOM tree.
	DocumentNode NodeType = iota
	// ElementNode represents a recognized or unrecognized HTML element.
	ElementNode
	// TextNode represents a run of character data. Text nodes are always leaves.
	TextNode
)

// String returns a debug-friendly name for the node type, used by the
// DOM dump utility (see package dump).
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// ElementKind is the closed set of element names this parser recognizes.
// A parsed tag name outside this set has no ElementKind; see
// ElementKindFromString.
type ElementKind int

const (
	Html ElementKind = iota
	Head
	Style
	Script
	Body
	P
	H1
	H2
	A
)

var elementKindNames = map[ElementKind]string{
	Html:   "html",
	Head:   "head",
	Style:  "style",
	Script: "script",
	Body:   "body",
	P:      "p",
	H1:     "h1",
	H2:     "h2",
	A:      "a",
}

// String returns the tag name for a recognized ElementKind.
func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ElementKindFromString maps a lowercase tag name to its ElementKind.
// The second return value is false for any tag name outside the
// recognized set, which is the "unknown-tag path" referenced throughout
// the tree constructor (SPEC_FULL.md §6.4).
func ElementKindFromString(tag string) (ElementKind, bool) {
	for kind, name := range elementKindNames {
		if name == tag {
			return kind, true
		}
	}
	return 0, false
}

// Attribute is a mutable two-buffer builder: the tokenizer streams
// characters into it one at a time, tagged as belonging to the name or
// the value, as the attribute-name/attribute-value tokenizer states
// require. Attribute is a plain value type, so Go's built-in ==
// gives structural equality.
type Attribute struct {
	Name  string
	Value string
}

// AddChar appends c to the attribute's name buffer when isName is true,
// otherwise to its value buffer.
func (a *Attribute) AddChar(c rune, isName bool) {
	if isName {
		a.Name += string(c)
	} else {
		a.Value += string(c)
	}
}

// Element is the payload of an ElementNode: its recognized kind (if
// any) plus the attributes collected while tokenizing its start tag.
type Element struct {
	Kind       ElementKind
	recognized bool
	Attributes []Attribute
}

// NewElement builds an Element from a tag name and a set of attributes.
// Tags outside the recognized ElementKind set still get a usable
// Element; RecognizedKind reports whether Kind is meaningful. (The tree
// constructor in package html only inserts recognized tags.)
func NewElement(tag string, attributes []Attribute) Element {
	kind, ok := ElementKindFromString(tag)
	if attributes == nil {
		attributes = []Attribute{}
	}
	return Element{Kind: kind, recognized: ok, Attributes: attributes}
}

// RecognizedKind reports whether the element's tag name was one of the
// recognized ElementKind values.
func (e Element) RecognizedKind() bool {
	return e.recognized
}

// Node is a single vertex in the DOM graph. See the package doc for the
// ownership discipline of its cross-links.
type Node struct {
	Type NodeType
	// Element is valid when Type == ElementNode.
	Element Element
	// Text is valid when Type == TextNode.
	Text string

	parent          *Node
	firstChild      *Node
	lastChild       *Node
	nextSibling     *Node
	previousSibling *Node
	window          *Window
}

// NewDocumentNode creates a bare Document node with no children.
func NewDocumentNode() *Node {
	return &Node{Type: DocumentNode}
}

// NewElementNode creates an Element node for the given tag and attributes.
func NewElementNode(tag string, attributes []Attribute) *Node {
	return &Node{Type: ElementNode, Element: NewElement(tag, attributes)}
}

// NewTextNode creates a Text node containing the single initial character c.
func NewTextNode(c rune) *Node {
	return &Node{Type: TextNode, Text: string(c)}
}

// ElementKind returns the node's recognized element kind and true, or
// (0, false) if the node is not an element or its tag is unrecognized.
func (n *Node) ElementKind() (ElementKind, bool) {
	if n == nil || n.Type != ElementNode {
		return 0, false
	}
	return n.Element.Kind, n.Element.recognized
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// SetParent sets the node's parent back-reference.
func (n *Node) SetParent(p *Node) { n.parent = p }

// FirstChild returns the node's first child, or nil if it has none.
func (n *Node) FirstChild() *Node { return n.firstChild }

// SetFirstChild sets the node's first-child link.
func (n *Node) SetFirstChild(c *Node) { n.firstChild = c }

// LastChild returns the node's last child, or nil if it has none.
func (n *Node) LastChild() *Node { return n.lastChild }

// SetLastChild sets the node's last-child back-reference.
func (n *Node) SetLastChild(c *Node) { n.lastChild = c }

// NextSibling returns the next node in the parent's child chain, or nil at the end.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// SetNextSibling sets the node's next-sibling link.
func (n *Node) SetNextSibling(s *Node) { n.nextSibling = s }

// PreviousSibling returns the previous node in the parent's child chain, or nil at the start.
func (n *Node) PreviousSibling() *Node { return n.previousSibling }

// SetPreviousSibling sets the node's previous-sibling back-reference.
func (n *Node) SetPreviousSibling(s *Node) { n.previousSibling = s }

// Window returns the Window that owns this node's document, following
// the weak back-reference planted at Window construction time.
func (n *Node) Window() *Window { return n.window }

// SetWindow sets the node's owning-Window back-reference.
func (n *Node) SetWindow(w *Window) { n.window = w }

// Equal reports whether n and other are structurally equal: same
// NodeType, same Element/Text payload, and recursively equal children
// chains. Equality is never by identity, so tests can build an expected
// sub-tree by hand and compare it against a parsed one.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type {
		return false
	}
	switch n.Type {
	case ElementNode:
		if n.Element.Kind != other.Element.Kind ||
			n.Element.recognized != other.Element.recognized ||
			len(n.Element.Attributes) != len(other.Element.Attributes) {
			return false
		}
		for i := range n.Element.Attributes {
			if n.Element.Attributes[i] != other.Element.Attributes[i] {
				return false
			}
		}
	case TextNode:
		if n.Text != other.Text {
			return false
		}
	}
	a, b := n.firstChild, other.firstChild
	for a != nil && b != nil {
		if !a.Equal(b) {
			return false
		}
		a, b = a.nextSibling, b.nextSibling
	}
	return a == nil && b == nil
}

// String implements fmt.Stringer for debugging; it does not walk children.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case ElementNode:
		return fmt.Sprintf("Element(%s)", n.Element.Kind)
	case TextNode:
		return fmt.Sprintf("Text(%q)", n.Text)
	default:
		return "Document"
	}
}

// Window is the top-level container holding a single Document per page
// frame. The Document's window back-reference is planted here, at
// construction time, and is weak: the Window owns the Document, not
// the other way around.
type Window struct {
	document *Node
}

// NewWindow creates a Window with a freshly created Document node.
func NewWindow() *Window {
	w := &Window{document: NewDocumentNode()}
	w.document.SetWindow(w)
	return w
}

// Document returns the Window's root Document node.
func (w *Window) Document() *Node { return w.document }
