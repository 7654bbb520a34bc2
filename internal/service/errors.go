package service

import "errors"

// Error kinds. Controllers map each kind to an HTTP status; match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrFormat     = errors.New("invalid format")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

const (
	MsgMissingFields      = "Missing fields"
	MsgInvalidDate        = "Invalid date format"
	MsgEmailExists        = "Email already exists"
	MsgUsernameExists     = "Username already exists"
	MsgBadCredentials     = "Bad email or password"
	MsgPermissionDenied   = "Permission denied"
	MsgEventNotFound      = "Event not found"
	MsgInvalidRequestBody = "Invalid request body"
)

// Error carries a kind and the human-readable message shown to clients
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}
