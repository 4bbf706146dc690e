package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Jeffail/gabs"
)

// Sentinel errors for common conditions.
var (
	// ErrWatchDone is returned by WatchStream.Next when the server closed
	// the stream. Check with errors.Is(err, client.ErrWatchDone).
	ErrWatchDone = errors.New("kubeclient: watch stream closed")

	// ErrUnversioned indicates the cluster's version has not been probed
	// successfully, so version comparisons cannot be answered.
	ErrUnversioned = errors.New("kubeclient: cluster version unknown")

	// ErrBadRequest indicates the API rejected the request as malformed (400).
	ErrBadRequest = errors.New("kubeclient: bad request")

	// ErrUnauthorized indicates missing or invalid credentials (401).
	ErrUnauthorized = errors.New("kubeclient: unauthorized")

	// ErrForbidden indicates the request was denied by policy (403).
	ErrForbidden = errors.New("kubeclient: forbidden")

	// ErrNotFound indicates the resource does not exist (404).
	ErrNotFound = errors.New("kubeclient: resource not found")

	// ErrAlreadyExists indicates a create conflict (409).
	ErrAlreadyExists = errors.New("kubeclient: resource already exists")
)

// APIError is the normalized form of a non-2xx API response. Message carries
// the error body's message field; it is empty when the error body did not
// decode, which is accepted lossy behavior rather than a failure of its own.
type APIError struct {
	// Verb is the HTTP verb of the failed request.
	Verb string

	// URL is the full request URL.
	URL string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the message field of the error body, if decodable.
	Message string

	// Err is the sentinel for this status, if one is mapped.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("kubeclient: %s %s: status %d: %s", e.Verb, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("kubeclient: %s %s: status %d", e.Verb, e.URL, e.StatusCode)
}

// Unwrap returns the mapped sentinel for errors.Is support.
func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError from an error response, extracting the
// message field leniently: an undecodable body leaves Message empty.
func newAPIError(verb, url string, statusCode int, body []byte) *APIError {
	var message string
	if doc, err := gabs.ParseJSON(body); err == nil {
		message, _ = doc.Path("message").Data().(string)
	}
	return &APIError{
		Verb:       verb,
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
		Err:        sentinelForStatus(statusCode),
	}
}

// sentinelForStatus maps HTTP status codes to sentinel errors. Unmapped
// statuses carry no sentinel; callers still see the full APIError.
func sentinelForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	default:
		return nil
	}
}

// IsNotFound reports whether err is an API not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is an API conflict error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
