package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	ErrInvalidRange        = errors.New("invalid range")
	ErrUnknownUnit         = errors.New("unknown unit")
	ErrUnknownDomain       = errors.New("unknown domain")
	ErrRateSource          = errors.New("rate source unavailable")
	ErrInvalidTable        = errors.New("invalid table")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidNumericInput ErrorKind = "invalid_numeric_input"
	KindInvalidRange        ErrorKind = "invalid_range"
	KindUnknownUnit         ErrorKind = "unknown_unit"
	KindUnknownDomain       ErrorKind = "unknown_domain"
	KindRateSource          ErrorKind = "rate_source"
	KindInvalidTable        ErrorKind = "invalid_table"
)

var sentinels = map[ErrorKind]error{
	KindInvalidNumericInput: ErrInvalidNumericInput,
	KindInvalidRange:        ErrInvalidRange,
	KindUnknownUnit:         ErrUnknownUnit,
	KindUnknownDomain:       ErrUnknownDomain,
	KindRateSource:          ErrRateSource,
	KindInvalidTable:        ErrInvalidTable,
}

// Error wraps an underlying error with operation context and a kind.
// Field names the offending input (e.g. "from", "birthDate") when there is one.
type Error struct {
	Op    string
	Kind  ErrorKind
	Field string
	Err   error
}

// NewError builds an Error whose cause is the sentinel for kind, annotated with detail.
func NewError(op string, kind ErrorKind, field, detail string) *Error {
	cause := sentinels[kind]
	if detail != "" {
		cause = fmt.Errorf("%w: %s", cause, detail)
	}
	return &Error{Op: op, Kind: kind, Field: field, Err: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an Error against the sentinel of its kind even when
// the cause chain was built by hand.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// IsKind helps callers classify errors without depending on the package that produced them.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// FieldOf returns the input field blamed by err, or "" if none was recorded.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
