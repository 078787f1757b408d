package config

import "fmt"

// ParseError reports a malformed or unreadable input file. It is fatal: the
// pipeline never builds or solves a model after one.
type ParseError struct {
	Path   string
	Line   int // 0 when unknown
	Reason string
	Err    error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %s", loc, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
