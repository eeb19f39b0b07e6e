// Package apperr defines the error kinds surfaced by the post index.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrParse    = errors.New("parse error")
	ErrIO       = errors.New("io error")
)

// ParseError reports a post file whose front-matter could not be turned
// into a post record.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold for every *ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IOError reports an unreadable content directory or post file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) hold for every *IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }
