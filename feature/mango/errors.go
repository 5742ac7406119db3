package mango

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	// KindRequest is a transport failure (network error, timeout).
	KindRequest ErrorKind = "request"
	// KindAPI is a non-200 HTTP status.
	KindAPI ErrorKind = "api"
	// KindParse is a 200 response whose body is not a valid line list.
	KindParse ErrorKind = "parse"
)

// Sentinels for errors.Is checks against a *FetchError.
var (
	ErrRequest = errors.New("mango request failed")
	ErrAPI     = errors.New("mango api returned an error status")
	ErrParse   = errors.New("mango response could not be parsed")
)

// FetchError describes why a fetch produced no usable snapshot.
type FetchError struct {
	Kind ErrorKind
	// Status and Body are set for KindAPI.
	Status int
	Body   string
	Err    error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("API error: %d - %s", e.Status, e.Body)
	case KindParse:
		return fmt.Sprintf("parse error: %v", e.Err)
	default:
		return fmt.Sprintf("request error: %v", e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}
