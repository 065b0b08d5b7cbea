package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *Error {
	return NewError(ErrNetworkConnection, message, cause)
}

func NewDecodeError(op Op, cause error) *Error {
	return NewError(ErrDecode, fmt.Sprintf("%s: malformed response", op), cause)
}

// NewStatusError maps a non-2xx response to an error. body is the (possibly
// truncated) response payload and is only used for the message.
func NewStatusError(op Op, statusCode int, body string) *Error {
	var errType ErrorType
	switch {
	case statusCode == http.StatusNotFound:
		errType = ErrNotFound
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		errType = ErrTimeout
	case statusCode >= 500:
		errType = ErrServer
	default:
		errType = ErrBadRequest
	}

	message := fmt.Sprintf("%s: unexpected status %d", op, statusCode)
	if body = strings.TrimSpace(body); body != "" {
		message += " (" + body + ")"
	}

	return &Error{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
	}
}

func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.Canceled) {
		return NewError(ErrCanceled, "request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrTimeout, "request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(ErrTimeout, "request timed out", err)
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewError(ErrTimeout, "request timed out", err)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	default:
		return NewNetworkError("request failed", err)
	}
}

func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Could not reach the contacts server."
	case ErrTimeout:
		return "The contacts server took too long to answer."
	case ErrCanceled:
		return "The request was canceled."
	case ErrNotFound:
		return "That contact no longer exists."
	case ErrBadRequest:
		return "The contacts server rejected the request."
	case ErrServer:
		return "The contacts server failed to process the request."
	case ErrDecode:
		return "The contacts server sent an unreadable response."
	default:
		return "An unexpected error occurred."
	}
}
