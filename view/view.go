// Package view renders highlighting results for xmlhl.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/heathj/xmlhighlight/highlight"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatANSI  Format = "ansi"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatANSI:
		return f, nil
	default:
		return "", errors.Errorf("unknown output format %q (want table, json, yaml or ansi)", s)
	}
}

var categoryColors = map[highlight.Category]*color.Color{
	highlight.Markup:         color.New(color.FgBlue, color.Bold),
	highlight.CommentDoctype: color.New(color.FgHiBlack),
	highlight.CDataMarker:    color.New(color.FgMagenta),
	highlight.StringLiteral:  color.New(color.FgGreen),
	highlight.AttributeName:  color.New(color.FgCyan),
}

// Renderer renders documents in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Document is the serialized form of one highlighted document.
type Document struct {
	Source string `json:"source" yaml:"source"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
	Spans  []Span `json:"spans" yaml:"spans"`
}

// Span is the serialized form of a highlight span.
type Span struct {
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Category string `json:"category" yaml:"category"`
	Text     string `json:"text" yaml:"text"`
}

// NewDocument converts a highlighting result for serialization.
func NewDocument(h *highlight.Highlighting) Document {
	doc := Document{Source: h.Source(), Spans: []Span{}}
	if err := h.Err(); err != nil {
		doc.Error = err.Error()
	}
	content := h.Content()
	for _, s := range h.Spans() {
		doc.Spans = append(doc.Spans, Span{
			Start:    s.Start,
			End:      s.End,
			Category: s.Category.String(),
			Text:     s.Text(content),
		})
	}
	return doc
}

// Render writes the documents in the renderer's format.
func (r *Renderer) Render(results []*highlight.Highlighting) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(results)
	case FormatYAML:
		return r.renderYAML(results)
	case FormatANSI:
		return r.renderANSI(results)
	default:
		return r.renderTable(results)
	}
}

func documents(results []*highlight.Highlighting) []Document {
	docs := make([]Document, 0, len(results))
	for _, h := range results {
		docs = append(docs, NewDocument(h))
	}
	return docs
}

func (r *Renderer) renderJSON(results []*highlight.Highlighting) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(documents(results)), "encode json")
}

func (r *Renderer) renderYAML(results []*highlight.Highlighting) error {
	enc := yaml.NewEncoder(r.writer)
	enc.SetIndent(2)
	if err := enc.Encode(documents(results)); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(enc.Close(), "encode yaml")
}

func (r *Renderer) renderTable(results []*highlight.Highlighting) error {
	for i, h := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(r.writer)
			}
			fmt.Fprintf(r.writer, "==> %s <==\n", h.Source())
		}
		doc := NewDocument(h)
		fmt.Fprintf(r.writer, "%-7s  %-7s  %-9s  %s\n", "START", "END", "CATEGORY", "TEXT")
		for _, s := range doc.Spans {
			fmt.Fprintf(r.writer, "%-7d  %-7d  %-9s  %s\n", s.Start, s.End, s.Category, strconv.Quote(s.Text))
		}
		if doc.Error != "" {
			fmt.Fprintf(r.writer, "error: %s\n", doc.Error)
		}
	}
	return nil
}

func (r *Renderer) renderANSI(results []*highlight.Highlighting) error {
	for _, h := range results {
		if _, err := io.WriteString(r.writer, Colorize(h.Content(), h.Spans())); err != nil {
			return errors.Wrap(err, "write output")
		}
	}
	return nil
}

// Colorize returns content with every span wrapped in its category color.
// Spans are applied in start order; a span overlapping one already applied
// is skipped. With color disabled the result equals content.
func Colorize(content []rune, spans []highlight.Span) string {
	ordered := slices.Clone(spans)
	slices.SortStableFunc(ordered, func(a, b highlight.Span) int {
		return a.Start - b.Start
	})

	var (
		out    strings.Builder
		cursor int
	)
	for _, s := range ordered {
		if s.Start < cursor || s.Start >= s.End || s.End > len(content) {
			continue
		}
		out.WriteString(string(content[cursor:s.Start]))
		text := string(content[s.Start:s.End])
		if c, ok := categoryColors[s.Category]; ok {
			text = c.Sprint(text)
		}
		out.WriteString(text)
		cursor = s.End
	}
	out.WriteString(string(content[cursor:]))
	return out.String()
}
