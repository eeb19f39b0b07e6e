package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestParseError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("title is required")
	err := fmt.Errorf("postindex: list: %w", &ParseError{File: "a.md", Err: cause})

	if !errors.Is(err, ErrParse) {
		t.Error("expected errors.Is(err, ErrParse)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if errors.Is(err, ErrIO) || errors.Is(err, ErrNotFound) {
		t.Error("parse error must not match other kinds")
	}

	var pe *ParseError
	if !errors.As(err, &pe) || pe.File != "a.md" {
		t.Fatalf("errors.As failed: %v", err)
	}
	if got := pe.Error(); got != "parse a.md: title is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIOError_IsAndUnwrap(t *testing.T) {
	err := &IOError{Op: "read dir", Path: "/posts", Err: fs.ErrNotExist}

	if !errors.Is(err, ErrIO) {
		t.Error("expected errors.Is(err, ErrIO)")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected fs.ErrNotExist through Unwrap")
	}
	if errors.Is(err, ErrParse) {
		t.Error("io error must not match ErrParse")
	}
}
