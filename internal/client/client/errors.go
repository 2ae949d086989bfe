package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed server response")
)

// User-facing messages shown when the server gives nothing better.
const (
	MsgNetwork = "Network error. Please check your connection."
	MsgServer  = "Server error occurred"
)

type Kind int

const (
	// KindNetwork: the request never got a response (refused, reset, timed out).
	KindNetwork Kind = iota + 1
	// KindServer: the server answered with a non-2xx status.
	KindServer
)

// APIError is returned by every HTTPClient call that fails on the wire.
// Message is safe to show to the user.
//
// It matches ErrUnavailable for network failures, ErrUnauthorized for
// 401/403 and ErrServer for other statuses; the underlying cause, if any,
// is reachable with errors.Is/As as well.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch {
	case e.Kind == KindNetwork:
		errs = append(errs, ErrUnavailable)
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		errs = append(errs, ErrUnauthorized)
	default:
		errs = append(errs, ErrServer)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

func serverError(status int, body []byte) *APIError {
	return &APIError{Kind: KindServer, Status: status, Message: messageFromBody(body)}
}

// messageFromBody picks the text to show for an error response: the JSON
// "message" field, a bare JSON string, the raw text body, or MsgServer.
func messageFromBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return MsgServer
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return MsgServer
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
		return s
	}

	if json.Valid(trimmed) {
		return MsgServer
	}
	return string(trimmed)
}
