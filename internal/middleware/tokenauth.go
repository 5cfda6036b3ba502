// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenVerifier verifies a signed identity token and returns the bound user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenAuth enforces identity-token authentication on every request it wraps.
//
// The token travels as a "token" field in the JSON request body rather than in
// an Authorization header; that is the documented wire contract of this
// service. The middleware reads the body, extracts and verifies the token,
// and restores the body so downstream handlers can decode their own fields.
//
// On success the bound user ID is stored in the request context. On a missing
// or invalid token the request is rejected with 401 and the downstream
// handler is never invoked.
func TokenAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				denied(w, "No token, authorization denied")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var payload struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &payload); err != nil || payload.Token == "" {
				denied(w, "No token, authorization denied")
				return
			}

			userID, err := verifier.Verify(payload.Token)
			if err != nil {
				denied(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denied(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
