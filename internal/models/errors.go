package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRows           = errors.New("no rows")
	ErrInternal         = errors.New("internal server error")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInvalidParams    = errors.New("invalid params")
	ErrSlotNotFound     = errors.New("session slot not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidContent   = errors.New("content is not valid JSON")
)

// ErrorKind classifies a failed call against a remote service.
type ErrorKind int

const (
	// KindTransport means the request never produced a response.
	KindTransport ErrorKind = iota + 1
	// KindMessage means the body carried a "message" field.
	KindMessage
	// KindValidation means the body carried an "errors" map.
	KindValidation
	// KindFallback means the body was unreadable or intentionally ignored.
	KindFallback
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMessage:
		return "message"
	case KindValidation:
		return "validation"
	case KindFallback:
		return "fallback"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// APIError is returned by every resource client operation that fails.
// Error returns the human readable message only, so it can be shown as is.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of an *APIError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
