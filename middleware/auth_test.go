package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notetaker/pkg/token"
)

func authedEcho(t *testing.T, gotUserID *string) http.Handler {
	t.Helper()
	return AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = UserID(r)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := token.Generate("user-1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	var gotUserID string
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	authedEcho(t, &gotUserID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := token.Generate("user-2", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	var gotUserID string
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+signed, nil)
	rec := httptest.NewRecorder()

	authedEcho(t, &gotUserID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", gotUserID)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID string
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()

	authedEcho(t, &gotUserID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, gotUserID)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID string
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	authedEcho(t, &gotUserID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := token.Generate("user-1", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	var gotUserID string
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	authedEcho(t, &gotUserID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
