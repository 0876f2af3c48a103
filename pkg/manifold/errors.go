package manifold

import (
	"errors"
	"fmt"
)

// ErrCode is the closed set of failure kinds a use case can surface. The
// transport layer maps each code to its own response class; nothing else
// escapes a handler.
type ErrCode string

const (
	ErrCodePermissionDenied ErrCode = "PermissionDenied"
	ErrCodeEntityNotFound   ErrCode = "EntityNotFound"
	ErrCodeInvalidInput     ErrCode = "InvalidInput"
	ErrCodeInternal         ErrCode = "InternalError"
)

// Error is the single failure value returned by every use case. Exactly one
// of the code-specific field groups is populated, depending on Code.
type Error struct {
	Code    ErrCode
	Message string

	// Populated for ErrCodePermissionDenied.
	Permission Permission
	Subject    string

	// Populated for ErrCodeEntityNotFound.
	EntityType string
	EntityID   any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the collaborator failure retained for logging.
func (e *Error) Unwrap() error {
	return e.cause
}

func PermissionDeniedError(permission Permission, subject string) *Error {
	return &Error{
		Code:       ErrCodePermissionDenied,
		Message:    fmt.Sprintf("%s does not have permission %s", subject, permission),
		Permission: permission,
		Subject:    subject,
	}
}

func EntityNotFoundError(entityType string, id any) *Error {
	return &Error{
		Code:       ErrCodeEntityNotFound,
		Message:    fmt.Sprintf("%s %v not found", entityType, id),
		EntityType: entityType,
		EntityID:   id,
	}
}

func InvalidInputError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}

func InternalError(cause error, message string) *Error {
	return &Error{
		Code:    ErrCodeInternal,
		Message: message,
		cause:   cause,
	}
}

// CodeOf extracts the error code from any error returned by a use case. It
// returns the empty string for nil and for errors that did not originate in
// this package.
func CodeOf(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// AsError unwraps err into the use-case error value, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// InvalidParamsError is how a feed type adapter signals that the parameters
// handed to it fail its own validation. Use cases translate it to an
// InvalidInput failure instead of an internal one.
type InvalidParamsError struct {
	Problems []string
}

func (e *InvalidParamsError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid feed parameters"
	}
	return fmt.Sprintf("invalid feed parameters: %v", e.Problems)
}
