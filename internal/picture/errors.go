package picture

import (
	"errors"
	"fmt"
)

var (
	ErrParse      = errors.New("malformed snapshot")
	ErrOutOfRange = errors.New("coordinates out of range")
)

// ParseError reports a snapshot that could not be decoded.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse snapshot: %s: %v", e.Reason, e.Err)
	}
	return "parse snapshot: " + e.Reason
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// RangeError reports a cell or size outside the picture bounds.
type RangeError struct {
	Row, Col      int
	Width, Height int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d picture", e.Row, e.Col, e.Width, e.Height)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
