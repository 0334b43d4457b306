package parser

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenizerEventTestcase struct {
	in     string  // document to tokenize
	events []Token // expected events, in order
}

var tokenizerEventTests = []tokenizerEventTestcase{
	{"<a></a>", []Token{
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 1, 0}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 4, 3}},
	}},
	{"<a/>", []Token{
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 1, 0}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 1, 0}},
	}},
	{"<r><a k='v'/></r>", []Token{
		{TokenType: StartTagToken, TagName: "r", Pos: Position{1, 1, 0}},
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 4, 3}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 4, 3}},
		{TokenType: EndTagToken, TagName: "r", Pos: Position{1, 14, 13}},
	}},
	{"<x:a xmlns:x='u'>t</x:a>", []Token{
		{TokenType: StartTagToken, Prefix: "x", TagName: "a", Pos: Position{1, 1, 0}},
		{TokenType: CharacterToken, Data: "t", Pos: Position{1, 18, 17}},
		{TokenType: EndTagToken, Prefix: "x", TagName: "a", Pos: Position{1, 19, 18}},
	}},
	{"<a>\n<!--hi-->\n</a>", []Token{
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 1, 0}},
		{TokenType: CharacterToken, Data: "\n", Pos: Position{1, 4, 3}},
		{TokenType: CommentToken, Data: "hi", Pos: Position{2, 1, 4}},
		{TokenType: CharacterToken, Data: "\n", Pos: Position{2, 10, 13}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{3, 1, 14}},
	}},
	{"<a><![CDATA[x<y]]></a>", []Token{
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 1, 0}},
		{TokenType: CDataToken, Data: "x<y", Pos: Position{1, 4, 3}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 19, 18}},
	}},
	{"<?xml version=\"1.0\"?><!DOCTYPE a><a/>", []Token{
		{TokenType: ProcInstToken, TagName: "xml", Data: "version=\"1.0\"", Pos: Position{1, 1, 0}},
		{TokenType: DocTypeToken, Data: "DOCTYPE a", Pos: Position{1, 22, 21}},
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 34, 33}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 34, 33}},
	}},
	// offsets count characters, not bytes
	{"<é>ü</é>", []Token{
		{TokenType: StartTagToken, TagName: "é", Pos: Position{1, 1, 0}},
		{TokenType: CharacterToken, Data: "ü", Pos: Position{1, 4, 3}},
		{TokenType: EndTagToken, TagName: "é", Pos: Position{1, 5, 4}},
	}},
	{"<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a/>", []Token{
		{TokenType: ProcInstToken, TagName: "xml", Data: "version=\"1.0\" encoding=\"ISO-8859-1\"", Pos: Position{1, 1, 0}},
		{TokenType: StartTagToken, TagName: "a", Pos: Position{1, 44, 43}},
		{TokenType: EndTagToken, TagName: "a", Pos: Position{1, 44, 43}},
	}},
	// entity references are kept as written
	{"<!DOCTYPE x [<!ENTITY e \"v\"><!ENTITY % p \"q\">]><x>&e;<y/></x>", []Token{
		{TokenType: DocTypeToken, Data: "DOCTYPE x [<!ENTITY e \"v\"><!ENTITY % p \"q\">]", Pos: Position{1, 1, 0}},
		{TokenType: StartTagToken, TagName: "x", Pos: Position{1, 48, 47}},
		{TokenType: CharacterToken, Data: "&e;", Pos: Position{1, 51, 50}},
		{TokenType: StartTagToken, TagName: "y", Pos: Position{1, 54, 53}},
		{TokenType: EndTagToken, TagName: "y", Pos: Position{1, 54, 53}},
		{TokenType: EndTagToken, TagName: "x", Pos: Position{1, 58, 57}},
	}},
	{"<x a=\"&copy;\">&nbsp;&amp;<y/></x>", []Token{
		{TokenType: StartTagToken, TagName: "x", Pos: Position{1, 1, 0}},
		{TokenType: CharacterToken, Data: "&nbsp;&", Pos: Position{1, 15, 14}},
		{TokenType: StartTagToken, TagName: "y", Pos: Position{1, 26, 25}},
		{TokenType: EndTagToken, TagName: "y", Pos: Position{1, 26, 25}},
		{TokenType: EndTagToken, TagName: "x", Pos: Position{1, 30, 29}},
	}},
}

// TestTokenizerEvents checks the kind, name and start position of every
// event for a set of small documents.
func TestTokenizerEvents(t *testing.T) {
	for _, tt := range tokenizerEventTests {
		runTestTokenizerEvents(tt, t)
	}
}

func runTestTokenizerEvents(tt tokenizerEventTestcase, t *testing.T) {
	t.Run(tt.in, func(t *testing.T) {
		t.Parallel()
		tokens, err := Tokenize(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.events, tokens)
	})
}

func TestTokenizerPosTracksCurrentEvent(t *testing.T) {
	p := NewXMLTokenizer("<a><b/></a>")
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, p.Pos())

	var positions []Position
	for p.Next() {
		assert.Equal(t, p.Token().Pos, p.Pos())
		positions = append(positions, p.Pos())
	}
	require.NoError(t, p.Err())
	assert.Equal(t, []Position{{1, 1, 0}, {1, 4, 3}, {1, 4, 3}, {1, 8, 7}}, positions)
}

type tokenizerErrorTestcase struct {
	in       string
	consumed int // events read before the failure
}

var tokenizerErrorTests = []tokenizerErrorTestcase{
	{"<a", 0},
	{"<a k='v></a>", 0},
	{"<a><b></a>", 2},
	{"<a><b>", 2},
	{"</a>", 0},
	{"<a>&bogus;</a>", 1},
	{"<!DOCTYPE a [<!ENTITY % e \"v\">]><a>&e;</a>", 2},
	{"<!--a--b-->", 0},
}

func TestTokenizerErrors(t *testing.T) {
	for _, tt := range tokenizerErrorTests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, err := Tokenize(tt.in)
			require.Error(t, err)
			assert.Len(t, tokens, tt.consumed)
		})
	}
}

func TestTokenizerMismatchedEndTag(t *testing.T) {
	_, err := Tokenize("<a><b></a>")
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, Position{Line: 1, Column: 7, Offset: 6}, synErr.Pos)
	assert.Contains(t, synErr.Msg, "closed by </a>")
}

func TestTokenizerUnclosedElement(t *testing.T) {
	_, err := Tokenize("<a>\n<b>")
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 2, synErr.Pos.Line)
	assert.Contains(t, synErr.Msg, "<b> is not closed")
}

func TestTokenizerWrapsDecoderErrors(t *testing.T) {
	_, err := Tokenize("<a")
	var xmlErr *xml.SyntaxError
	assert.ErrorAs(t, err, &xmlErr)
}

func TestTokenizerClose(t *testing.T) {
	p := NewXMLTokenizer("<a></a>")
	require.True(t, p.Next())
	require.NoError(t, p.Close())
	assert.False(t, p.Next())
	assert.NoError(t, p.Err())
}

func TestTokenNameLength(t *testing.T) {
	assert.Equal(t, 1, Token{TagName: "a"}.NameLength())
	assert.Equal(t, 5, Token{Prefix: "xs", TagName: "el"}.NameLength())
	assert.Equal(t, 2, Token{TagName: "éü"}.NameLength())
	assert.Equal(t, 3, Token{Data: "a\nb"}.TextLength())
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "StartTag", StartTagToken.String())
	assert.Equal(t, "CData", CDataToken.String())
	assert.Equal(t, "TokenType(42)", TokenType(42).String())
}
