package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrRequestFailed = errors.New("request failed")
)

// mapStatus converts a non-2xx response into a sentinel error. body is a
// prefix of the response body, used only for the message.
func mapStatus(code int, body []byte) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	default:
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return fmt.Errorf("%w: status %d", ErrRequestFailed, code)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, code, msg)
	}
}
