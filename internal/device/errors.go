package device

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	// ErrTransport marks failures to reach the device or non-2xx answers.
	ErrTransport = errors.New("device transport failure")
	// ErrMalformedResponse marks bodies that cannot be decoded into the wire format.
	ErrMalformedResponse = errors.New("malformed device response")
)

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + strconv.Itoa(int(e)) + " " + http.StatusText(int(e))
}
