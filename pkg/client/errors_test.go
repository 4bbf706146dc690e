package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIErrorMessageExtraction(t *testing.T) {
	t.Run("decodable error body", func(t *testing.T) {
		err := newAPIError("GET", "http://x/api/v1/pods/gone", 404, []byte(`{"message":"not found"}`))
		assert.Equal(t, "not found", err.Message)
		assert.Contains(t, err.Error(), "not found")
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("undecodable error body yields empty message", func(t *testing.T) {
		err := newAPIError("GET", "http://x/api/v1/pods/gone", 404, []byte("<html>nope</html>"))
		assert.Equal(t, "", err.Message)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("error body without message field", func(t *testing.T) {
		err := newAPIError("DELETE", "http://x/api/v1/pods/x", 500, []byte(`{"reason":"InternalError"}`))
		assert.Equal(t, "", err.Message)
	})
}

func TestSentinelForStatus(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := newAPIError("GET", "http://x/", tt.status, nil)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}

	t.Run("unmapped status carries no sentinel", func(t *testing.T) {
		err := newAPIError("GET", "http://x/", 500, nil)
		assert.Nil(t, errors.Unwrap(err))
	})
}

func TestErrorHelpers(t *testing.T) {
	notFound := newAPIError("GET", "http://x/", 404, nil)
	conflict := newAPIError("POST", "http://x/", 409, nil)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))
	assert.True(t, IsAlreadyExists(conflict))
	assert.False(t, IsAlreadyExists(errors.New("other")))
}
