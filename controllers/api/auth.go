package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/grocerly/grocerly/auth"
	"github.com/grocerly/grocerly/models/account"
)

var accountRepo = &account.Postgres{}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
// Login may be a username or an email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents a successful auth response
type AuthResponse struct {
	Account *account.Account `json:"account"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail validates email format
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register handles user registration
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Username) > 30 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username must be 3 to 30 characters"})
		return
	}

	if !isValidEmail(req.Email) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid email format"})
		return
	}

	if len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "password must be at least 6 characters"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create account"})
		return
	}

	acc, err := accountRepo.Create(req.Username, req.Email, hash)
	if err != nil {
		switch err {
		case account.ErrEmailExists:
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "email already exists"})
		case account.ErrUsernameExists:
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "username already exists"})
		default:
			log.WithError(err).Error("Failed to create account")
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create account"})
		}
		return
	}

	token, err := auth.CreateSession(acc.ID, acc.Username, acc.Email)
	if err != nil {
		log.WithError(err).Error("Failed to create session")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}
	auth.SetSessionCookie(w, token)

	writeJSON(w, http.StatusCreated, AuthResponse{Account: acc})
}

// Login handles user login with a username or email
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	}

	// Same generic message whether the account or the password was wrong
	acc, err := accountRepo.FindByUsernameOrEmail(req.Username)
	if err != nil {
		if err == account.ErrAccountNotFound {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid username/email or password"})
			return
		}
		log.WithError(err).Error("Failed to look up account")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to log in"})
		return
	}

	if !auth.CheckPassword(req.Password, acc.Password) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid username/email or password"})
		return
	}

	token, err := auth.CreateSession(acc.ID, acc.Username, acc.Email)
	if err != nil {
		log.WithError(err).Error("Failed to create session")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to log in"})
		return
	}
	auth.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, AuthResponse{Account: acc})
}

// Logout destroys the current session. Safe to call without one.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := auth.DestroySession(cookie.Value); err != nil {
			log.WithError(err).Error("Failed to destroy session")
		}
	}
	auth.ClearSessionCookie(w)

	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the authenticated account
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	acc, err := accountRepo.FindByID(identity.UserID)
	if err != nil {
		if err == account.ErrAccountNotFound {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}
		log.WithError(err).Error("Failed to load account")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load account"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Account: acc})
}
