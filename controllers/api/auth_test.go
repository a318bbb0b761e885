package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerly/grocerly/auth"
)

func authRouter() http.Handler {
	r := httprouter.New()
	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/logout", Logout)
	return r
}

// registration input validation fails before any store access
func TestRegisterValidation(t *testing.T) {
	router := authRouter()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "email": "a@example.com", "password": "secret1"}},
		{"long username", map[string]string{"username": "abcdefghijklmnopqrstuvwxyzabcde", "email": "a@example.com", "password": "secret1"}},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "secret1"}},
		{"short password", map[string]string{"username": "alice", "email": "a@example.com", "password": "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	router := authRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{"username": "alice"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{"password": "secret1"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	router := authRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	router := authRouter()

	token, err := auth.CreateSession(1, "alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = auth.GetSession(token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	// the cookie is expired on the response
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last+tag@sub.domain.org"}
	invalid := []string{"", "plain", "missing@tld", "@example.com", "user@.com"}

	for _, email := range valid {
		if !isValidEmail(email) {
			t.Errorf("isValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if isValidEmail(email) {
			t.Errorf("isValidEmail(%q) = true, want false", email)
		}
	}
}
