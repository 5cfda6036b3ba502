// Package http provides HTTP handlers for user authentication and
// owner-scoped todo operations.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/todovault/internal/service"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Signup registers a new user and returns an identity token.
	Signup(ctx context.Context, username, email, password string) (string, error)
	// Login verifies credentials and returns an identity token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for user signup and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records internal failures; their causes are never sent to clients.
	Log *zap.Logger
}

// SignupRequest represents the JSON payload for user signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /signup.
// It expects a JSON body with non-empty "username", "email" and "password"
// fields, registers the user and responds 201 with an identity token.
// A duplicate email or username yields 400.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.AuthService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, service.ErrConflict) {
		writeMessage(w, http.StatusBadRequest, "Username or email already in use")
		return
	}
	if err != nil {
		h.Log.Error("signup failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error creating user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login handles POST /login.
// It expects a JSON body with "email" and "password" and responds 200 with an
// identity token. An unknown email and a wrong password both yield the same
// 400 response, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeMessage(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		h.Log.Error("login failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error logging in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
