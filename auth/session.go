package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/grocerly/grocerly/connections"
)

const (
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "grocerly_session"

	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side session record stored in Redis
type Session struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// newToken generates a random 256-bit session token
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CreateSession stores a new session in Redis and returns its token
func CreateSession(userID int, username, email string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(Session{
		UserID:    userID,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}

	conn := connections.Redis()
	defer conn.Close()

	_, err = conn.Do("SETEX", sessionKeyPrefix+token, int(sessionTTL.Seconds()), data)
	if err != nil {
		return "", err
	}

	return token, nil
}

// GetSession loads the session for a token.
// Returns ErrSessionNotFound for unknown or expired tokens.
func GetSession(token string) (*Session, error) {
	conn := connections.Redis()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", sessionKeyPrefix+token))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// DestroySession removes a session from Redis
func DestroySession(token string) error {
	conn := connections.Redis()
	defer conn.Close()

	_, err := conn.Do("DEL", sessionKeyPrefix+token)
	return err
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
