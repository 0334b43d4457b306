package highlight

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category is the lexical class a Span is rendered with.
type Category uint8

const (
	// Markup covers tag punctuation, tag names and declarations.
	Markup Category = iota + 1
	// CommentDoctype covers comments and document type declarations.
	CommentDoctype
	// CDataMarker covers the <![CDATA[ and ]]> delimiters.
	CDataMarker
	// StringLiteral covers a quoted attribute value, quotes included.
	StringLiteral
	// AttributeName covers an attribute name up to its '='.
	AttributeName
)

var categoryNames = map[Category]string{
	Markup:         "markup",
	CommentDoctype: "comment",
	CDataMarker:    "cdata",
	StringLiteral:  "string",
	AttributeName:  "attribute",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory returns the Category whose String form is name.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown category %q", name)
}

// Span is a highlighted half-open range [Start, End) of character offsets.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Len is the number of characters covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the characters the span covers. Out of range bounds are
// clamped to content.
func (s Span) Text(content []rune) string {
	start, end := max(s.Start, 0), min(s.End, len(content))
	if start >= end {
		return ""
	}
	return string(content[start:end])
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Category, s.Start, s.End)
}
