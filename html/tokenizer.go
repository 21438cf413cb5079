// Package html provides HTML tokenization and tree construction: a
// lazy lexer (Tokenizer) feeding a token sequence into an insertion-
// mode state machine (Parser) that builds a dom.Node graph.
//
// Both follow the shape of the WHATWG HTML5 tokenization and tree
// construction algorithms (https://html.spec.whatwg.org/multipage/parsing.html),
// restricted to the pragmatic subset of tags this browser recognizes:
// html, head, body, style, script, p, h1, h2, a. Character references,
// comments, and DOCTYPE are not tokenized — they surface as Char tokens,
// which the Initial insertion mode discards.
package html

import (
	"strings"
	"unicode"

	"github.com/lukehoban/saba-go/dom"
)

// TokenType is the discriminant of an HtmlToken.
type TokenType int

const (
	// StartTagToken represents an opening tag, e.g. "<p>".
	StartTagToken TokenType = iota
	// EndTagToken represents a closing tag, e.g. "</p>".
	EndTagToken
	// CharToken represents a single character of text content.
	CharToken
	// EOFToken marks the end of input.
	EOFToken
)

// Token is a single unit produced by the Tokenizer.
type Token struct {
	Type TokenType
	// Tag is the lowercased tag name for StartTagToken/EndTagToken.
	Tag string
	// SelfClosing is set when a start tag ends in "/>".
	SelfClosing bool
	// Attributes holds the attributes collected for a StartTagToken.
	Attributes []dom.Attribute
	// Char is the character carried by a CharToken.
	Char rune
}

// tokenizerState is the Tokenizer's internal lexer state. The full set
// mirrors the HTML5 tokenization states this subset implements.
type tokenizerState int

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	scriptDataState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
)

// Tokenizer is a lazy, restartable-only-from-the-start producer of
// Tokens. Call Next repeatedly until it returns ok == false.
type Tokenizer struct {
	input []rune
	pos   int
	state tokenizerState

	finished bool
	pending  []rune // characters to replay after a failed script-data end-tag match

	tagName        strings.Builder
	tagIsEnd       bool
	selfClosing    bool
	attrs          []dom.Attribute
	currentAttr    dom.Attribute
	hasCurrentAttr bool

	lastStartTagName string
	tempBuffer       strings.Builder // tentative </tag name while in script data
}

// NewTokenizer creates a Tokenizer over input, positioned at the start
// in the Data state. input is indexed by code point, not byte, so
// multi-byte UTF-8 text tokenizes one rune at a time.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input), state: dataState}
}

// Next returns the next token and true, or a zero Token and false once
// the input (and any already-emitted Eof) has been fully consumed.
func (t *Tokenizer) Next() (Token, bool) {
	if t.finished {
		return Token{}, false
	}

	for {
		if len(t.pending) > 0 {
			c := t.pending[0]
			t.pending = t.pending[1:]
			return Token{Type: CharToken, Char: c}, true
		}

		if t.pos >= len(t.input) {
			t.finished = true
			return Token{Type: EOFToken}, true
		}

		c := t.input[t.pos]

		switch t.state {
		case dataState:
			if tok, ok := t.stepData(c); ok {
				return tok, true
			}
		case tagOpenState:
			if tok, ok := t.stepTagOpen(c); ok {
				return tok, true
			}
		case endTagOpenState:
			t.beginTag(true)
			t.state = tagNameState
		case tagNameState:
			if tok, ok := t.stepTagName(c); ok {
				return tok, true
			}
		case beforeAttributeNameState:
			if tok, ok := t.stepBeforeAttributeName(c); ok {
				return tok, true
			}
		case attributeNameState:
			if tok, ok := t.stepAttributeName(c); ok {
				return tok, true
			}
		case afterAttributeNameState:
			if tok, ok := t.stepAfterAttributeName(c); ok {
				return tok, true
			}
		case beforeAttributeValueState:
			t.stepBeforeAttributeValue(c)
		case attributeValueDoubleQuotedState:
			if tok, ok := t.stepAttributeValueQuoted(c, '"'); ok {
				return tok, true
			}
		case attributeValueSingleQuotedState:
			if tok, ok := t.stepAttributeValueQuoted(c, '\''); ok {
				return tok, true
			}
		case attributeValueUnquotedState:
			if tok, ok := t.stepAttributeValueUnquoted(c); ok {
				return tok, true
			}
		case afterAttributeValueQuotedState:
			if tok, ok := t.stepAfterAttributeValueQuoted(c); ok {
				return tok, true
			}
		case selfClosingStartTagState:
			if tok, ok := t.stepSelfClosingStartTag(c); ok {
				return tok, true
			}
		case scriptDataState:
			if tok, ok := t.stepScriptData(c); ok {
				return tok, true
			}
		case scriptDataLessThanSignState:
			if tok, ok := t.stepScriptDataLessThanSign(c); ok {
				return tok, true
			}
		case scriptDataEndTagOpenState:
			t.stepScriptDataEndTagOpen(c)
		case scriptDataEndTagNameState:
			if tok, ok := t.stepScriptDataEndTagName(c); ok {
				return tok, true
			}
		}
	}
}

// Data state (HTML5 §12.2.5.1): emit a pending character, or enter
// TagOpen on '<'.
func (t *Tokenizer) stepData(c rune) (Token, bool) {
	if c == '<' {
		t.pos++
		t.state = tagOpenState
		return Token{}, false
	}
	t.pos++
	return Token{Type: CharToken, Char: c}, true
}

// TagOpen state (HTML5 §12.2.5.6).
func (t *Tokenizer) stepTagOpen(c rune) (Token, bool) {
	switch {
	case c == '/':
		t.pos++
		t.state = endTagOpenState
		return Token{}, false
	case isASCIILetter(c):
		t.beginTag(false)
		t.state = tagNameState
		return Token{}, false
	default:
		// Not a recognizable tag construct: reconsume c in Data, but
		// the '<' itself surfaces as a literal character.
		t.state = dataState
		return Token{Type: CharToken, Char: '<'}, true
	}
}

// TagName state (HTML5 §12.2.5.8), shared by start and end tags.
func (t *Tokenizer) stepTagName(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		t.state = beforeAttributeNameState
		return Token{}, false
	case c == '/':
		t.pos++
		t.state = selfClosingStartTagState
		return Token{}, false
	case c == '>':
		t.pos++
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		t.tagName.WriteRune(unicode.ToLower(c))
		t.pos++
		return Token{}, false
	}
}

// BeforeAttributeName state (HTML5 §12.2.5.32).
func (t *Tokenizer) stepBeforeAttributeName(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		return Token{}, false
	case c == '/':
		t.pos++
		t.state = selfClosingStartTagState
		return Token{}, false
	case c == '>':
		t.pos++
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		t.beginAttribute()
		t.state = attributeNameState
		return Token{}, false
	}
}

// AttributeName state (HTML5 §12.2.5.33).
func (t *Tokenizer) stepAttributeName(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		t.state = afterAttributeNameState
		return Token{}, false
	case c == '=':
		t.pos++
		t.state = beforeAttributeValueState
		return Token{}, false
	case c == '>':
		t.pos++
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		t.currentAttr.AddChar(unicode.ToLower(c), true)
		t.pos++
		return Token{}, false
	}
}

// AfterAttributeName state (HTML5 §12.2.5.34).
func (t *Tokenizer) stepAfterAttributeName(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		return Token{}, false
	case c == '/':
		t.pos++
		t.state = selfClosingStartTagState
		return Token{}, false
	case c == '=':
		t.pos++
		t.state = beforeAttributeValueState
		return Token{}, false
	case c == '>':
		t.pos++
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		t.beginAttribute()
		t.state = attributeNameState
		return Token{}, false
	}
}

// BeforeAttributeValue state (HTML5 §12.2.5.35).
func (t *Tokenizer) stepBeforeAttributeValue(c rune) {
	switch {
	case isWhitespace(c):
		t.pos++
	case c == '"':
		t.pos++
		t.state = attributeValueDoubleQuotedState
	case c == '\'':
		t.pos++
		t.state = attributeValueSingleQuotedState
	default:
		t.state = attributeValueUnquotedState
	}
}

// Attribute value states (HTML5 §12.2.5.36-38): accumulate into the
// value buffer until the matching quote, then finalize the attribute.
func (t *Tokenizer) stepAttributeValueQuoted(c rune, quote rune) (Token, bool) {
	if c == quote {
		t.pos++
		t.finalizeAttribute()
		t.state = afterAttributeValueQuotedState
		return Token{}, false
	}
	t.currentAttr.AddChar(c, false)
	t.pos++
	return Token{}, false
}

func (t *Tokenizer) stepAttributeValueUnquoted(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		t.finalizeAttribute()
		t.state = beforeAttributeNameState
		return Token{}, false
	case c == '>':
		t.pos++
		t.finalizeAttribute()
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		t.currentAttr.AddChar(c, false)
		t.pos++
		return Token{}, false
	}
}

// AfterAttributeValueQuoted state (HTML5 §12.2.5.39).
func (t *Tokenizer) stepAfterAttributeValueQuoted(c rune) (Token, bool) {
	switch {
	case isWhitespace(c):
		t.pos++
		t.state = beforeAttributeNameState
		return Token{}, false
	case c == '/':
		t.pos++
		t.state = selfClosingStartTagState
		return Token{}, false
	case c == '>':
		t.pos++
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	default:
		// Parse error in the real algorithm; reconsume in BeforeAttributeName.
		t.state = beforeAttributeNameState
		return Token{}, false
	}
}

// SelfClosingStartTag state (HTML5 §12.2.5.40).
func (t *Tokenizer) stepSelfClosingStartTag(c rune) (Token, bool) {
	if c == '>' {
		t.pos++
		t.selfClosing = true
		tok := t.emitTag()
		t.state = t.stateAfterTag(tok)
		return tok, true
	}
	// Parse error in the real algorithm; reconsume in BeforeAttributeName.
	t.state = beforeAttributeNameState
	return Token{}, false
}

// ScriptData state (HTML5 §12.2.5.4): raw text content of <script> and
// <style> elements, preserved verbatim until the matching end tag.
func (t *Tokenizer) stepScriptData(c rune) (Token, bool) {
	if c == '<' {
		t.pos++
		t.state = scriptDataLessThanSignState
		return Token{}, false
	}
	t.pos++
	return Token{Type: CharToken, Char: c}, true
}

// ScriptDataLessThanSign state (HTML5 §12.2.5.16).
func (t *Tokenizer) stepScriptDataLessThanSign(c rune) (Token, bool) {
	if c == '/' {
		t.pos++
		t.tempBuffer.Reset()
		t.state = scriptDataEndTagOpenState
		return Token{}, false
	}
	// Not an end tag after all: replay the '<' and reconsider c in ScriptData.
	t.state = scriptDataState
	return Token{Type: CharToken, Char: '<'}, true
}

// ScriptDataEndTagOpen state (HTML5 §12.2.5.17).
func (t *Tokenizer) stepScriptDataEndTagOpen(c rune) {
	if isASCIILetter(c) {
		t.tempBuffer.WriteRune(unicode.ToLower(c))
		t.pos++
		t.state = scriptDataEndTagNameState
		return
	}
	// Not a tag name: replay "</" literally and resume ScriptData at c.
	t.pending = append(t.pending, '<', '/')
	t.state = scriptDataState
}

// ScriptDataEndTagName state (HTML5 §12.2.5.18): accumulate a tentative
// end-tag name; only an exact, case-insensitive match against the
// element that opened raw-text mode (script or style) actually closes it.
func (t *Tokenizer) stepScriptDataEndTagName(c rune) (Token, bool) {
	if isASCIILetter(c) {
		t.tempBuffer.WriteRune(unicode.ToLower(c))
		t.pos++
		return Token{}, false
	}

	if t.tempBuffer.String() != t.lastStartTagName {
		// Mismatch: "</" + the buffered name were not a real closing
		// tag; replay them as literal characters and resume ScriptData
		// at the current (unconsumed) character.
		t.pending = append(t.pending, '<', '/')
		t.pending = append(t.pending, []rune(t.tempBuffer.String())...)
		t.state = scriptDataState
		return Token{}, false
	}

	// Confirmed match: skip to '>' (any intervening whitespace/attribute-
	// like content on the end tag is discarded, matching the EndTag
	// token's name-only shape) and emit EndTag.
	for t.pos < len(t.input) && t.input[t.pos] != '>' {
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++
	}
	tag := t.tempBuffer.String()
	t.state = dataState
	return Token{Type: EndTagToken, Tag: tag}, true
}

func (t *Tokenizer) beginTag(isEnd bool) {
	t.tagIsEnd = isEnd
	t.tagName.Reset()
	t.selfClosing = false
	t.attrs = nil
	t.hasCurrentAttr = false
	t.currentAttr = dom.Attribute{}
}

func (t *Tokenizer) beginAttribute() {
	t.finalizeAttribute()
	t.currentAttr = dom.Attribute{}
	t.hasCurrentAttr = true
}

func (t *Tokenizer) finalizeAttribute() {
	if t.hasCurrentAttr {
		t.attrs = append(t.attrs, t.currentAttr)
		t.hasCurrentAttr = false
		t.currentAttr = dom.Attribute{}
	}
}

func (t *Tokenizer) emitTag() Token {
	t.finalizeAttribute()
	name := t.tagName.String()

	if t.tagIsEnd {
		return Token{Type: EndTagToken, Tag: name}
	}

	t.lastStartTagName = name
	return Token{
		Type:        StartTagToken,
		Tag:         name,
		SelfClosing: t.selfClosing,
		Attributes:  append([]dom.Attribute(nil), t.attrs...),
	}
}

// stateAfterTag picks the state to resume in once a tag has been
// emitted: a non-self-closing <script> or <style> start tag switches
// the tokenizer into raw-text (ScriptData) mode.
func (t *Tokenizer) stateAfterTag(tok Token) tokenizerState {
	if tok.Type == StartTagToken && !tok.SelfClosing && (tok.Tag == "script" || tok.Tag == "style") {
		return scriptDataState
	}
	return dataState
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
