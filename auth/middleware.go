package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	IdentityContextKey contextKey = "identity"

	loginPath = "/login"
)

// Identity is the authenticated account resolved from the session
type Identity struct {
	UserID   int
	Username string
	Email    string
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// SessionAuth middleware resolves the session cookie into an Identity
func SessionAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			unauthenticated(w, r)
			return
		}

		sess, err := GetSession(cookie.Value)
		if err != nil {
			if err != ErrSessionNotFound {
				log.WithError(err).Error("Failed to load session")
			}
			unauthenticated(w, r)
			return
		}

		identity := &Identity{
			UserID:   sess.UserID,
			Username: sess.Username,
			Email:    sess.Email,
		}
		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next(w, r.WithContext(ctx), ps)
	}
}

// unauthenticated rejects the request: API clients get a 401,
// browser navigations get a redirect to the login page
func unauthenticated(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// GetIdentityFromContext gets the authenticated identity from context
func GetIdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(IdentityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
