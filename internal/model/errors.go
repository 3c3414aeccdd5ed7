package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownValue marks an enum token outside the backend vocabulary.
	ErrUnknownValue = errors.New("unrecognized value")
	// ErrMissingField marks a required field that was absent or empty.
	ErrMissingField = errors.New("missing required field")
	// ErrNegative marks a numeric field that must not be negative.
	ErrNegative = errors.New("negative value")
	// ErrBadTimestamp marks a timestamp no supported layout could parse.
	ErrBadTimestamp = errors.New("unparseable timestamp")
)

// DecodeError reports a backend payload that could not be mapped onto the
// canonical model. It names the offending field and the raw value.
type DecodeError struct {
	Kind     string // record kind, e.g. "food" or "exercise"
	RecordID string
	Field    string
	Value    string
	Err      error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Kind != "" {
		b.WriteString(" " + e.Kind)
	}
	if e.RecordID != "" {
		fmt.Fprintf(&b, " %s", e.RecordID)
	}
	fmt.Fprintf(&b, ": field %q", e.Field)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
