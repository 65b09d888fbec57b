package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/acts/pkg/identity"
)

func TestRequestID_Generated(t *testing.T) {
	var seen *identity.Identity
	handler := RequestID(captureHandler(&seen))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, got, seen.RequestID)
	assert.Equal(t, "10.0.0.7", seen.RemoteIP.String())
	assert.True(t, seen.IsAnonymous())
}

func TestRequestID_Propagated(t *testing.T) {
	var seen *identity.Identity
	handler := RequestID(captureHandler(&seen))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.NotNil(t, seen)
	assert.Equal(t, "abc-123", seen.RequestID)
}

func TestRequestID_TooLongIsReplaced(t *testing.T) {
	handler := RequestID(http.NotFoundHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
