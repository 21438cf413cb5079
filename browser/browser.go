// Package browser holds the top-level Browser/Page shell that wires the
// HTML tokenizer and tree constructor to an HTTP response and renders
// the resulting DOM via package dump. Grounded on
// original_source/saba_core/src/browser.rs.
package browser

import (
	"github.com/lukehoban/saba-go/dom"
	"github.com/lukehoban/saba-go/dump"
	"github.com/lukehoban/saba-go/html"
	"github.com/lukehoban/saba-go/httpresp"
	"github.com/lukehoban/saba-go/log"
)

// Browser owns one or more Pages; only a single active page is modeled.
type Browser struct {
	activePageIndex int
	pages           []*Page
}

// NewBrowser creates a Browser with a single Page, back-referencing it.
func NewBrowser() *Browser {
	b := &Browser{}
	page := newPage()
	page.browser = b
	b.pages = append(b.pages, page)
	return b
}

// CurrentPage returns the Browser's active Page.
func (b *Browser) CurrentPage() *Page {
	return b.pages[b.activePageIndex]
}

// Page holds one navigated document's parsed frame.
type Page struct {
	browser *Browser
	frame   *dom.Window
}

func newPage() *Page {
	return &Page{}
}

// Frame returns the Page's current parsed Window, or nil before any
// response has been received.
func (p *Page) Frame() *dom.Window {
	return p.frame
}

// ReceiveResponse tokenizes and parses resp's body into a fresh DOM
// tree, stores it as the Page's frame, and returns a debug dump of the
// resulting Document.
func (p *Page) ReceiveResponse(resp httpresp.Response) string {
	log.Debugf("page received response: status=%d bytes=%d", resp.StatusCode, len(resp.Body))
	p.createFrame(resp.Body)

	if p.frame == nil {
		return ""
	}
	return dump.Document(p.frame.Document())
}

func (p *Page) createFrame(body string) {
	tokenizer := html.NewTokenizer(body)
	parser := html.NewParser(tokenizer)
	p.frame = parser.ConstructTree()
}
