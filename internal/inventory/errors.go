package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is matched by every FormatError via errors.Is.
var ErrFormat = errors.New("invalid record format")

// FormatError reports text that could not be turned into a record: a
// non-numeric ID or a stored line with too few fields. Path and Line are set
// only when the value came from a file.
type FormatError struct {
	Value  string
	Reason string
	Path   string
	Line   int
	Err    error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	reason := e.Reason
	if reason == "" {
		reason = "invalid value"
	}
	b.WriteString(reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ErrorKind classifies format failures as user input problems.
func (e *FormatError) ErrorKind() string { return "validation" }

// IsFormatError reports whether err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
