package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so the UI layer can map it to a status code
// and a user-facing message.
type Kind string

const (
	// KindConfig means the application is misconfigured (e.g. missing base URL).
	KindConfig Kind = "config"
	// KindRequest means the upstream HTTP call failed or returned a non-success status.
	KindRequest Kind = "request"
	// KindParse means the upstream response body could not be decoded.
	KindParse Kind = "parse"
	// KindSchema means an expected field is missing from the records.
	KindSchema Kind = "schema"
	// KindBadInput means the caller passed an invalid parameter.
	KindBadInput Kind = "bad_input"
)

type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status=%d", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Config(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

func Request(msg string, cause error) *Error {
	return &Error{Kind: KindRequest, Message: msg, Cause: cause}
}

func RequestStatus(msg string, status int) *Error {
	return &Error{Kind: KindRequest, Message: msg, Status: status}
}

func Parse(msg string, cause error) *Error {
	return &Error{Kind: KindParse, Message: msg, Cause: cause}
}

func Schema(msg string) *Error {
	return &Error{Kind: KindSchema, Message: msg}
}

func BadInput(msg string) *Error {
	return &Error{Kind: KindBadInput, Message: msg}
}

// KindOf returns the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// HTTPStatus maps an error to the status code the API should answer with.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindConfig:
		return http.StatusInternalServerError
	case KindRequest, KindParse:
		return http.StatusBadGateway
	case KindSchema:
		return http.StatusUnprocessableEntity
	case KindBadInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
