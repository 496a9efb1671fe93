package docboost

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/internal/textutil"
)

// Sentinel errors. Every error returned by an entry matches one of these
// with errors.Is.
var (
	ErrInexistentEntry = errors.New("docboost: entry doesn't exist")
	ErrUnexpectedValue = errors.New("docboost: unexpected entry value")
	ErrConversion      = errors.New("docboost: value conversion failed")
	ErrInvalidArgument = errors.New("docboost: invalid argument")
)

// An InexistentEntryError is returned when an operation requires an entry
// that the document does not hold.
type InexistentEntryError struct {
	Key string
}

func (e *InexistentEntryError) Error() string {
	return "docboost: entry doesn't exist for key '" + e.Key + "'"
}

func (e *InexistentEntryError) Is(target error) bool { return target == ErrInexistentEntry }

const (
	reasonNull  = "a null value was found"
	reasonEmpty = "an empty value was found"
)

// An UnexpectedValueError is returned when an entry exists but its value is
// null or empty and the caller asked for one that is not.
type UnexpectedValueError struct {
	Key    string
	Reason string
}

func (e *UnexpectedValueError) Error() string {
	return "docboost: unexpected value for key '" + e.Key + "': " + e.Reason
}

func (e *UnexpectedValueError) Is(target error) bool { return target == ErrUnexpectedValue }

func nullValueError(key string) error  { return &UnexpectedValueError{Key: key, Reason: reasonNull} }
func emptyValueError(key string) error { return &UnexpectedValueError{Key: key, Reason: reasonEmpty} }

const maxValueText = 100

// A ConversionError describes a value that could not be converted to the
// type an entry works with.
type ConversionError struct {
	Key       string
	Type      reflect.Type // destination
	Value     string       // abbreviated rendering of the value
	ValueType reflect.Type // nil when the value was null
	Storing   bool
	Err       error
}

func newConversionError(key string, dst reflect.Type, v any, storing bool, err error) *ConversionError {
	e := &ConversionError{
		Key:     key,
		Type:    dst,
		Value:   textutil.Abbreviate(v, maxValueText),
		Storing: storing,
		Err:     err,
	}
	if v != nil {
		e.ValueType = reflect.TypeOf(v)
	}
	return e
}

func (e *ConversionError) Error() string {
	var sb strings.Builder
	op := "retrieving"
	if e.Storing {
		op = "storing"
	}
	fmt.Fprintf(&sb, "docboost: unable to convert value to type '%s' while %s document field '%s'. Actual value was [%s]",
		convert.Describe(e.Type), op, e.Key, e.Value)
	if e.ValueType != nil {
		fmt.Fprintf(&sb, " of type '%s'", e.ValueType)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(textutil.Truncate(e.Err.Error(), maxValueText))
	}
	return sb.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
