package highlight

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// HighlightFile reads path, decodes it with charset and scans it. An empty
// charset means UTF-8. Only read and decode failures are returned; a
// document that cannot be fully scanned is reported like HighlightString
// does.
func (h *Highlighter) HighlightFile(path, charset string) (*Highlighting, error) {
	content, err := ReadFile(path, charset)
	if err != nil {
		return nil, err
	}
	return h.highlight(path, content), nil
}

// ReadFile returns the text of path decoded with charset.
func ReadFile(path, charset string) (string, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s as %s", path, charset)
	}
	return string(decoded), nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	if charset == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported charset %q", charset)
	}
	return enc, nil
}
