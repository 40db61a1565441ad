package domain

import "errors"

// Error kinds. Every failure returned by the service layer wraps exactly one
// of these so the transport can pick a status code with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthenticated  = errors.New("authentication error")
	ErrForbidden        = errors.New("authorization error")
	ErrUpstream         = errors.New("upstream error")
	ErrConfiguration    = errors.New("configuration error")
	ErrRateLimited      = errors.New("rate limited")
	ErrAuditUnavailable = errors.New("audit store unavailable")
)

// Error carries a user-visible message together with its kind.
type Error struct {
	Kind    error
	Message string
}

// NewError builds an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Message returns the user-visible text of err: the message of a wrapped
// *Error when present, otherwise err.Error().
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
