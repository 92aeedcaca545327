package parser

import (
	"fmt"
	"strings"
)

// SyntaxError is a single parse-time error. The parser never formats or
// prints these; reporters read the fields.
type SyntaxError struct {
	Message string
	Span    Span
	Path    string
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Span, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// ErrorList collects every syntax error of one parse, in discovery order
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d syntax errors:\n%s", len(l), strings.Join(msgs, "\n"))
}

// Unwrap exposes the individual errors to errors.Is / errors.As
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
