package tracker

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindNotFound
	KindBusinessRule
	KindExternalService
)

func (ek ErrorKind) String() string {
	switch ek {
	case KindValidation:
		return "VALIDATION"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindBusinessRule:
		return "BUSINESS_RULE"
	case KindExternalService:
		return "EXTERNAL_SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed failure every core operation reports. Callers branch
// on Kind; Err keeps the underlying cause for logging.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v: [%v]", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%v: %v", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewBusinessRuleError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func NewExternalServiceError(err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindExternalService,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorKindOf extracts the kind of a typed error. The second return value
// is false for untyped infrastructure failures.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var typedError *Error
	if errors.As(err, &typedError) {
		return typedError.Kind, true
	}

	return 0, false
}
