package highlight

import (
	"unicode"

	"github.com/pkg/errors"
)

type attrState int

const (
	seekingName attrState = iota
	readingName
	seekingValue
	readingValue
)

// attrScanner tokenizes name="value" pairs inside the open range
// (from, to) of a tag or declaration.
type attrScanner struct {
	text  []rune
	state attrState
	// tokenStart is the first offset of the name or value being read.
	tokenStart int
	quote      rune
	emit       func(Span)
}

func scanAttributes(text []rune, from, to int, emit func(Span)) error {
	s := attrScanner{text: text, emit: emit}
	return s.scan(from, to)
}

func (s *attrScanner) scan(from, to int) error {
	to = min(to, len(s.text))
	for i := from + 1; i < to; i++ {
		c := s.text[i]
		if s.state == seekingName && !unicode.IsSpace(c) {
			s.tokenStart = i
			s.state = readingName
		}

		switch s.state {
		case readingName:
			if c == '=' {
				// A name glued to the previous value lost its last
				// character to the skip below and may be empty.
				if i > s.tokenStart {
					s.emit(Span{Start: s.tokenStart, End: i, Category: AttributeName})
				}
				s.state = seekingValue
			}
		case seekingValue:
			if c == '"' || c == '\'' {
				s.tokenStart = i
				s.quote = c
				s.state = readingValue
			}
		case readingValue:
			if c == s.quote {
				s.emit(Span{Start: s.tokenStart, End: i + 1, Category: StringLiteral})
				s.state = seekingName
				// The character right after a closing quote is never a
				// token start.
				i++
			}
		}
	}

	if s.state == seekingValue {
		return errors.Errorf("attribute at offset %d has no quoted value before offset %d", s.tokenStart, to)
	}
	return nil
}
