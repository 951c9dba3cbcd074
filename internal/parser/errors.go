package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal parse conditions. Every *ParseError wraps one.
var (
	ErrMalformedHeadline       = errors.New("malformed headline")
	ErrMalformedClause         = errors.New("malformed preposition clause")
	ErrMalformedCrossReference = errors.New("malformed cross-reference")
	ErrOrderingViolation       = errors.New("ordering violation")
	ErrEmptyEntry              = errors.New("entry has no body")
)

// ParseError reports a grammar failure together with the raw text that caused it,
// so the fixup table can be extended.
type ParseError struct {
	Kind error
	Msg  string
	Text string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Text)
	}
	return fmt.Sprintf("%v: %s: %q", e.Kind, e.Msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newError(kind error, text, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Text: text}
}
