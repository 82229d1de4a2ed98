package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport & Availability Errors
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrHealthProbeFailed  = errors.New("health probe failed")
	ErrRequestFailed      = errors.New("request failed")
	ErrMissingToken       = errors.New("missing access token")
	ErrTokenExpired       = errors.New("access token expired")
)

// NewBackendUnavailableError is the fast-fail error returned when the client
// already knows the backend is down and skips the network call entirely.
func NewBackendUnavailableError(endpoint string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrBackendUnavailable,
		Details:    fmt.Sprintf("Skipping call to %s: backend marked unavailable", endpoint),
		Field:      "availability",
	}
}

// NewHealthProbeError wraps a failed health probe
func NewHealthProbeError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrHealthProbeFailed,
		Cause:      cause,
		Field:      "health",
	}
}

// NewTransportError wraps a network-level failure reaching an endpoint
func NewTransportError(endpoint string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrRequestFailed,
		Details:    fmt.Sprintf("Transport failure calling %s", endpoint),
		Cause:      cause,
		Field:      "transport",
	}
}

// NewStatusCodeError wraps a non-2xx backend response
func NewStatusCodeError(endpoint string, statusCode int, body string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        ErrRequestFailed,
		Details:    fmt.Sprintf("%s returned status %d: %s", endpoint, statusCode, body),
		Field:      "status_code",
	}
}

// NewBackendRejectionError wraps a 2xx response whose envelope carries success=false
func NewBackendRejectionError(endpoint string, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrRequestFailed,
		Details:    fmt.Sprintf("%s rejected the request: %s", endpoint, message),
		Field:      "envelope",
	}
}

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Field:      "authorization",
	}
}

func NewTokenExpiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrTokenExpired,
		Field:      "authorization",
	}
}

func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

func IsHealthProbeFailed(err error) bool {
	return errors.Is(err, ErrHealthProbeFailed)
}

func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

func IsMissingToken(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}
