package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a request failed.
type Kind uint8

const (
	// KindNetwork: no response was received.
	KindNetwork Kind = iota + 1
	// KindAuth: the API answered 401; the session has been torn down.
	KindAuth
	// KindValidation: any other 4xx, or a response body that could not be decoded.
	KindValidation
	// KindServer: 5xx.
	KindServer
)

// Sentinels for errors.Is; every *Error matches the one for its Kind.
var (
	ErrNetwork    = errors.New("network failure")
	ErrAuth       = errors.New("authentication failure")
	ErrValidation = errors.New("validation failure")
	ErrServer     = errors.New("server failure")
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkFailure"
	case KindAuth:
		return "AuthFailure"
	case KindValidation:
		return "ValidationFailure"
	case KindServer:
		return "ServerFailure"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindAuth:
		return ErrAuth
	case KindValidation:
		return ErrValidation
	case KindServer:
		return ErrServer
	}
	return nil
}

// Error describes a failed API call.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: %s (%d): %s", e.Method, e.Path, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of err, or 0 when err did not come from an API call.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// StatusOf returns the HTTP status behind err, or 0 when there was none.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}
