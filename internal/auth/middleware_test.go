package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	userID  string
	isAdmin bool
	err     error
}

func (v *stubValidator) ValidateToken(string) (string, bool, error) {
	return v.userID, v.isAdmin, v.err
}

func identityEcho() (http.Handler, *string, *bool) {
	var seenID string
	var seenAdmin bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = UserID(r.Context())
		seenAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &seenID, &seenAdmin
}

func TestRequireAuth(t *testing.T) {
	next, seenID, _ := identityEcho()
	handler := RequireAuth(&stubValidator{userID: "u1"})(next)

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", *seenID)

	// Rejected token.
	handler = RequireAuth(&stubValidator{err: errors.New("expired")})(next)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	next, seenID, _ := identityEcho()
	handler := OptionalAuth(&stubValidator{userID: "u1"})(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", *seenID)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", *seenID)

	// A bad token degrades to anonymous instead of failing the request.
	handler = OptionalAuth(&stubValidator{err: errors.New("expired")})(next)
	*seenID = ""
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", *seenID)
}

func TestRequireAdmin(t *testing.T) {
	next, _, seenAdmin := identityEcho()

	handler := RequireAuth(&stubValidator{userID: "u1", isAdmin: false})(RequireAdmin(next))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	handler = RequireAuth(&stubValidator{userID: "u1", isAdmin: true})(RequireAdmin(next))
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *seenAdmin)
}
