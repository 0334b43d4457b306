package highlight

import (
	"github.com/heathj/xmlhighlight/parser"
)

const (
	xmlDeclarationTag = "<?xml"
	// len("<![CDATA[") and len("<!DOCTYPE")
	cdataOpenLength   = 9
	doctypeOpenLength = 9
	// len("<!--") + len("-->")
	commentDelimitersLength = 7
)

func (s *scanner) add(start, end int, c Category) {
	s.spans = append(s.spans, Span{Start: start, End: end, Category: c})
}

func (s *scanner) emit(span Span) {
	s.spans = append(s.spans, span)
}

func (s *scanner) hasXMLDeclaration() bool {
	if len(s.text) < len(xmlDeclarationTag) {
		return false
	}
	return string(s.text[:len(xmlDeclarationTag)]) == xmlDeclarationTag
}

func (s *scanner) highlightXMLDeclaration() error {
	if !s.hasXMLDeclaration() {
		return nil
	}
	closing, err := locateClose(s.text, 0, ordinaryClose)
	if err != nil {
		return err
	}

	s.add(0, len(xmlDeclarationTag), Markup)
	if err := scanAttributes(s.text, len(xmlDeclarationTag), closing, s.emit); err != nil {
		return err
	}
	// "?>"
	s.add(closing-1, closing+1, Markup)
	return nil
}

func (s *scanner) highlightStartElement(tok parser.Token, start int) error {
	closing, err := locateClose(s.text, start, ordinaryClose)
	if err != nil {
		return err
	}
	end := start + tok.NameLength() + 1

	s.add(start, end, Markup)
	if err := scanAttributes(s.text, end, closing, s.emit); err != nil {
		return err
	}
	s.add(closing, closing+1, Markup)
	return nil
}

func (s *scanner) highlightEndElement(prev, cur parser.Position, start int) error {
	closing, err := locateClose(s.text, start, ordinaryClose)
	if err != nil {
		return err
	}

	// <a/> is reported as a start and an end at the same location. Only
	// the '/' before '>' is left to highlight for the end.
	if prev.SameLocation(cur) {
		s.add(closing-1, closing, Markup)
		return nil
	}
	s.add(start, closing+1, Markup)
	return nil
}

func (s *scanner) highlightCData(start int) error {
	closing, err := locateClose(s.text, start, cdataClose)
	if err != nil {
		return err
	}

	s.add(start, start+cdataOpenLength, CDataMarker)
	// "]]>"
	s.add(closing-2, closing+1, CDataMarker)
	return nil
}

func (s *scanner) highlightDocType(start int) error {
	closing, err := locateClose(s.text, start, ordinaryClose)
	if err != nil {
		return err
	}

	s.add(start, start+doctypeOpenLength, CommentDoctype)
	s.add(closing, closing+1, CommentDoctype)
	return nil
}

func (s *scanner) highlightComment(tok parser.Token, start int) {
	s.add(start, start+tok.TextLength()+commentDelimitersLength, CommentDoctype)
}
