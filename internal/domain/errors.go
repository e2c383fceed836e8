package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingField       = errors.New("missing field")
	ErrInvalidField       = errors.New("invalid field")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUpload             = errors.New("upload failed")
	ErrInternal           = errors.New("internal error")
)

// Error carries a user-facing message next to one of the sentinel kinds above.
// Details holds the underlying diagnostic, when there is one.
type Error struct {
	Kind    error
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Internal wraps a store or transport failure with the message shown to the client.
func Internal(msg string, cause error) *Error {
	e := &Error{Kind: ErrInternal, Message: msg}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

var ErrAdminRequired = NewError(ErrForbidden, "Prohibido - se requiere rol de administrador")
