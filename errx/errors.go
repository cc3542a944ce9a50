package errx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueMismatch indicates a primitive column could not be parsed into its target type.
	ErrValueMismatch = errors.New("value mismatch")

	// ErrDeferredDecode indicates a deferred (JSON) column failed to decode against its shape.
	ErrDeferredDecode = errors.New("deferred decode failed")

	// ErrMissingRequiredField indicates a non-nullable field without default had no column at all.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrShapeMismatch indicates the caller asked to encode/decode a value against an incompatible shape.
	// It is a programming error and never depends on the data.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Error carries record/path context while remaining compatible with errors.Is().
type Error struct {
	Kind   error
	Record int //1-based record number, 0 when not record scoped
	Path   string
	Value  string
	Cause  error
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("csvx")
	if e.Record > 0 {
		sb.WriteString(fmt.Sprintf(": record %d", e.Record))
	}
	sb.WriteString(": ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("error")
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" at %q", e.Path))
	}
	if e.Value != "" {
		sb.WriteString(fmt.Sprintf(": %q", e.Value))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.Kind != nil && target == e.Kind {
		return true
	}
	if e.Cause != nil {
		return errors.Is(e.Cause, target)
	}
	return false
}

// ValueMismatch reports raw text that does not parse as the primitive at path
func ValueMismatch(record int, path, value string, cause error) error {
	return &Error{
		Kind:   ErrValueMismatch,
		Record: record,
		Path:   path,
		Value:  value,
		Cause:  cause,
	}
}

// DeferredDecode reports a deferred column whose JSON payload did not match the shape at path
func DeferredDecode(record int, path, value string, cause error) error {
	return &Error{
		Kind:   ErrDeferredDecode,
		Record: record,
		Path:   path,
		Value:  value,
		Cause:  cause,
	}
}

func MissingRequiredField(record int, path string) error {
	return &Error{
		Kind:   ErrMissingRequiredField,
		Record: record,
		Path:   path,
	}
}

func ShapeMismatch(format string, args ...interface{}) error {
	return &Error{
		Kind:  ErrShapeMismatch,
		Cause: fmt.Errorf(format, args...),
	}
}

// WithRecord returns err tagged with record when err is an *Error without one
func WithRecord(err error, record int) error {
	var actual *Error
	if errors.As(err, &actual) && actual.Record == 0 {
		clone := *actual
		clone.Record = record
		return &clone
	}
	return err
}

func IsValueMismatch(err error) bool { return errors.Is(err, ErrValueMismatch) }

func IsDeferredDecode(err error) bool { return errors.Is(err, ErrDeferredDecode) }

func IsMissingRequiredField(err error) bool { return errors.Is(err, ErrMissingRequiredField) }

func IsShapeMismatch(err error) bool { return errors.Is(err, ErrShapeMismatch) }
