package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrRequestFailed = errors.New("request failed")
	ErrDecode        = errors.New("unexpected response body")
)

// RequestError is a non-2xx answer from the API. Message is the server's
// "detail" when it sent one, so it can be shown to the user as is.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
