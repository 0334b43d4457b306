package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	cdataOpen     = "<![CDATA["
	doctypeName   = "DOCTYPE"
	entityDeclTag = "<!ENTITY"
)

// SyntaxError is a well-formedness failure detected by the tokenizer on
// top of what encoding/xml reports itself.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml syntax error at %s: %s", e.Pos, e.Msg)
}

// XMLTokenizer walks a document one structural event at a time and keeps
// track of where each event starts in character units.
type XMLTokenizer struct {
	content   string
	decoder   *xml.Decoder
	tracker   positionTracker
	token     Token
	pos       Position
	openNames []xml.Name
	// lastStart is where the most recent start tag began. The end tag
	// encoding/xml synthesizes for <a/> is reported there too.
	lastStart Position
	done      bool
	err       error
}

// NewXMLTokenizer creates a tokenizer over already decoded document text.
func NewXMLTokenizer(content string) *XMLTokenizer {
	d := xml.NewDecoder(strings.NewReader(content))
	d.Strict = true
	// The content is decoded text: an encoding declared in the prologue
	// describes the original bytes, not this string.
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}
	// Entities are never expanded: a known reference decodes to itself.
	d.Entity = make(map[string]string, len(xml.HTMLEntity))
	for name := range xml.HTMLEntity {
		d.Entity[name] = entityRef(name)
	}

	start := Position{Line: 1, Column: 1}
	return &XMLTokenizer{
		content: content,
		decoder: d,
		tracker: positionTracker{content: content, pos: start},
		pos:     start,
	}
}

// Next advances to the next event. It returns false once the input is
// exhausted or the tokenizer failed; Err tells the two apart.
func (p *XMLTokenizer) Next() bool {
	if p.done {
		return false
	}

	before := p.decoder.InputOffset()
	raw, err := p.decoder.RawToken()
	if err == io.EOF {
		if n := len(p.openNames); n > 0 {
			p.fail(&SyntaxError{
				Pos: p.tracker.advanceTo(int(before)),
				Msg: fmt.Sprintf("unexpected EOF: element <%s> is not closed", qualified(p.openNames[n-1])),
			})
			return false
		}
		p.done = true
		return false
	}
	if err != nil {
		p.fail(errors.Wrap(err, "read xml token"))
		return false
	}
	after := p.decoder.InputOffset()
	start := p.tracker.advanceTo(int(before))

	tok := Token{Pos: start}
	switch t := raw.(type) {
	case xml.StartElement:
		tok.TokenType = StartTagToken
		tok.Prefix, tok.TagName = t.Name.Space, t.Name.Local
		p.openNames = append(p.openNames, t.Name)
		p.lastStart = start
	case xml.EndElement:
		tok.TokenType = EndTagToken
		tok.Prefix, tok.TagName = t.Name.Space, t.Name.Local
		if after == before {
			tok.Pos = p.lastStart
		}
		if err := p.closeElement(t.Name, tok.Pos); err != nil {
			p.fail(err)
			return false
		}
	case xml.CharData:
		tok.TokenType = CharacterToken
		if strings.HasPrefix(p.content[int(before):], cdataOpen) {
			tok.TokenType = CDataToken
		}
		tok.Data = string(t)
	case xml.Comment:
		tok.TokenType = CommentToken
		tok.Data = string(t)
	case xml.ProcInst:
		tok.TokenType = ProcInstToken
		tok.TagName = t.Target
		tok.Data = string(t.Inst)
	case xml.Directive:
		tok.TokenType = DirectiveToken
		tok.Data = string(t)
		if bytes.HasPrefix(t, []byte(doctypeName)) {
			tok.TokenType = DocTypeToken
			p.declareEntities(tok.Data)
		}
	}

	p.token = tok
	p.pos = tok.Pos
	return true
}

// Token returns the current event.
func (p *XMLTokenizer) Token() Token {
	return p.token
}

// Pos is where the current event begins. Before the first call to Next it
// is the start of the document.
func (p *XMLTokenizer) Pos() Position {
	return p.pos
}

// Err returns the failure that stopped the tokenizer, if any.
func (p *XMLTokenizer) Err() error {
	return p.err
}

// Close releases the decoder. Calling Next afterwards returns false.
func (p *XMLTokenizer) Close() error {
	p.done = true
	p.decoder = nil
	p.openNames = nil
	return nil
}

func (p *XMLTokenizer) fail(err error) {
	p.err = err
	p.done = true
}

func (p *XMLTokenizer) closeElement(name xml.Name, pos Position) error {
	n := len(p.openNames)
	if n == 0 {
		return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unexpected end element </%s>", qualified(name))}
	}
	open := p.openNames[n-1]
	if open != name {
		return &SyntaxError{
			Pos: pos,
			Msg: fmt.Sprintf("element <%s> closed by </%s>", qualified(open), qualified(name)),
		}
	}
	p.openNames = p.openNames[:n-1]
	return nil
}

// declareEntities adds the general entities declared in a document type's
// internal subset, so references to them later in the document are
// accepted.
func (p *XMLTokenizer) declareEntities(doctype string) {
	for _, decl := range strings.Split(doctype, entityDeclTag)[1:] {
		fields := strings.Fields(decl)
		if len(fields) == 0 || fields[0] == "%" {
			continue
		}
		p.decoder.Entity[fields[0]] = entityRef(fields[0])
	}
}

func entityRef(name string) string {
	return "&" + name + ";"
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// positionTracker converts the byte offsets reported by encoding/xml into
// character positions. Offsets only ever move forward.
type positionTracker struct {
	content string
	byteOff int
	pos     Position
}

func (t *positionTracker) advanceTo(byteOff int) Position {
	for t.byteOff < byteOff && t.byteOff < len(t.content) {
		r, size := utf8.DecodeRuneInString(t.content[t.byteOff:])
		t.byteOff += size
		t.pos.Offset++
		if r == '\n' {
			t.pos.Line++
			t.pos.Column = 1
		} else {
			t.pos.Column++
		}
	}
	return t.pos
}
