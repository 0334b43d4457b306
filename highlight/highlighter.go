// Package highlight computes syntax highlighting spans for XML documents.
//
// A scan walks the document once. Structural events come from a streaming
// parser; the punctuation the parser does not report (brackets, quotes,
// attribute names) is located by re-scanning the raw characters from the
// event's start offset. Offsets are character indices into the document.
package highlight

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/heathj/xmlhighlight/parser"
)

// EventSource is the streaming parser a scan is driven by.
type EventSource interface {
	// Next advances to the next structural event.
	Next() bool
	Token() parser.Token
	// Pos is where the current event begins.
	Pos() parser.Position
	// Err is the failure that made Next return false, if any.
	Err() error
	Close() error
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithReporter sets where scan failures are reported.
func WithReporter(r Reporter) Option {
	return func(h *Highlighter) {
		h.reporter = r
	}
}

// WithSourceFactory replaces the streaming parser used for each scan.
func WithSourceFactory(fn func(content string) EventSource) Option {
	return func(h *Highlighter) {
		h.newSource = fn
	}
}

// Highlighter scans documents. It holds no per-scan state and may be used
// from several goroutines at once.
type Highlighter struct {
	reporter  Reporter
	newSource func(content string) EventSource
}

// New creates a Highlighter. Without WithReporter, failures are logged as
// warnings on a logger of its own writing to stderr.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{}
	for _, opt := range opts {
		opt(h)
	}
	if h.reporter == nil {
		h.reporter = LogReporter(logrus.New())
	}
	if h.newSource == nil {
		h.newSource = func(content string) EventSource {
			return parser.NewXMLTokenizer(content)
		}
	}
	return h
}

// Highlighting is the outcome of one scan.
type Highlighting struct {
	source  string
	content []rune
	spans   []Span
	err     error
}

// Source identifies the scanned document: its path, or its text.
func (h *Highlighting) Source() string {
	return h.source
}

// Content is the scanned text the span offsets index into.
func (h *Highlighting) Content() []rune {
	return h.content
}

// Spans returns the spans in the order they were produced.
func (h *Highlighting) Spans() []Span {
	return slices.Clone(h.spans)
}

// Err is the reason the scan stopped early. The spans found before the
// failure are still available.
func (h *Highlighting) Err() error {
	return h.err
}

// HighlightString scans content held in memory. A document that cannot be
// fully scanned yields partial spans and is reported, never returned as an
// error.
func (h *Highlighter) HighlightString(content string) *Highlighting {
	return h.highlight(content, content)
}

func (h *Highlighter) highlight(source, content string) *Highlighting {
	s := &scanner{text: []rune(content)}
	err := s.run(h.newSource(content))
	if err != nil {
		err.Source = source
		h.reporter.Report(source, err)
	}

	result := &Highlighting{source: source, content: s.text, spans: s.spans}
	if err != nil {
		result.err = err
	}
	return result
}

// scanner is the state of a single scan.
type scanner struct {
	text  []rune
	spans []Span
}

func (s *scanner) run(src EventSource) *ScanError {
	defer src.Close()

	if err := s.highlightXMLDeclaration(); err != nil {
		return &ScanError{Kind: ErrMalformedConstruct, Err: err}
	}

	for {
		prev := src.Pos()
		if !src.Next() {
			break
		}
		cur := src.Pos()
		if err := s.dispatch(src.Token(), prev, cur); err != nil {
			return &ScanError{Kind: ErrMalformedConstruct, Err: err}
		}
	}

	if err := src.Err(); err != nil {
		return &ScanError{Kind: ErrStreamParse, Err: err}
	}
	return nil
}

func (s *scanner) dispatch(tok parser.Token, prev, cur parser.Position) error {
	start := cur.Offset
	switch tok.TokenType {
	case parser.StartTagToken:
		return s.highlightStartElement(tok, start)
	case parser.EndTagToken:
		return s.highlightEndElement(prev, cur, start)
	case parser.CDataToken:
		return s.highlightCData(start)
	case parser.DocTypeToken:
		return s.highlightDocType(start)
	case parser.CommentToken:
		s.highlightComment(tok, start)
	}
	return nil
}
