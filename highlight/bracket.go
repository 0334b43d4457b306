package highlight

import (
	"github.com/pkg/errors"
)

// closeKind selects what counts as the end of a construct.
type closeKind int

const (
	// ordinaryClose is the first '>' found.
	ordinaryClose closeKind = iota
	// cdataClose is a '>' preceded by "]]".
	cdataClose
)

func (k closeKind) String() string {
	if k == cdataClose {
		return "]]>"
	}
	return ">"
}

// locateClose returns the offset of the first qualifying '>' after from.
// The scan does not know about quotes or comments: a '>' inside an
// attribute value is matched like any other.
func locateClose(text []rune, from int, kind closeKind) (int, error) {
	for i := max(from+1, 0); i < len(text); i++ {
		if text[i] != '>' {
			continue
		}
		if kind == ordinaryClose || (i >= 2 && text[i-1] == ']' && text[i-2] == ']') {
			return i, nil
		}
	}
	return 0, errors.Errorf("no %q found after offset %d", kind, from)
}
