package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthPutsUserIDIntoContext(t *testing.T) {
	var gotUserID int64
	var gotOK bool

	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/7", nil)
	req.Header.Set(HeaderUserID, "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called without X-User-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/7", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called with malformed X-User-ID")
	}))

	for _, bad := range []string{"abc", "-1", "0", "1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/7", nil)
		req.Header.Set(HeaderUserID, bad)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", bad)
	}
}

func TestGetUserIDEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
