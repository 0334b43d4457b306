package parser

import (
	"fmt"
	"unicode/utf8"
)

// TokenType identifies the structural event a Token stands for.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	CDataToken
	DocTypeToken
	ProcInstToken
	DirectiveToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Character"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case CDataToken:
		return "CData"
	case DocTypeToken:
		return "DocType"
	case ProcInstToken:
		return "ProcInst"
	case DirectiveToken:
		return "Directive"
	default:
		return fmt.Sprintf("TokenType(%d)", uint(t))
	}
}

// Position is a location in the document. Line and Column are 1-based,
// Offset is 0-based. All three count characters, not bytes.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SameLocation reports whether both positions point at the same line and
// column.
func (p Position) SameLocation(o Position) bool {
	return p.Line == o.Line && p.Column == o.Column
}

// Token is a concrete event that is ready to be consumed.
type Token struct {
	TokenType TokenType
	// Prefix is the namespace prefix of a tag name, as written in the
	// source. It is empty for unprefixed names.
	Prefix string
	// TagName is the local tag name, or the target of a processing
	// instruction.
	TagName string
	// Data is the inner text of comments, character data, directives and
	// processing instructions.
	Data string
	Pos  Position
}

// NameLength is the character length of the qualified name, prefix and
// separator included.
func (t Token) NameLength() int {
	n := utf8.RuneCountInString(t.TagName)
	if t.Prefix != "" {
		n += utf8.RuneCountInString(t.Prefix) + 1
	}
	return n
}

// TextLength is the character length of Data.
func (t Token) TextLength() int {
	return utf8.RuneCountInString(t.Data)
}
