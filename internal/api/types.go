package api

import "time"

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type ErrorType string

const (
	ErrNetworkConnection ErrorType = "network_connection"
	ErrTimeout           ErrorType = "timeout"
	ErrCanceled          ErrorType = "canceled"
	ErrNotFound          ErrorType = "not_found"
	ErrBadRequest        ErrorType = "bad_request"
	ErrServer            ErrorType = "server_error"
	ErrDecode            ErrorType = "decode"
)

type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Op names a data source operation for status reporting.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)
