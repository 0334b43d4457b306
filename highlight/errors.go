package highlight

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrStreamParse means the streaming parser could not continue.
	ErrStreamParse = errors.New("stream parse failure")
	// ErrMalformedConstruct means an expected closing character was not
	// found in the raw text.
	ErrMalformedConstruct = errors.New("malformed construct")
)

// ScanError is the reason a scan stopped before the end of the document.
// It matches both its Kind and its cause with errors.Is.
type ScanError struct {
	// Source identifies the document: a file path, or the text itself.
	Source string
	// Kind is ErrStreamParse or ErrMalformedConstruct.
	Kind error
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ScanError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Reporter is told about every scan that stopped early.
type Reporter interface {
	Report(source string, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(source string, err error)

func (f ReporterFunc) Report(source string, err error) {
	f(source, err)
}

type logReporter struct {
	log logrus.FieldLogger
}

// LogReporter reports failures as warnings on log.
func LogReporter(log logrus.FieldLogger) Reporter {
	return logReporter{log: log}
}

func (r logReporter) Report(source string, err error) {
	r.log.WithFields(logrus.Fields{
		"source": source,
	}).WithError(err).Warn("can't highlight document")
}
