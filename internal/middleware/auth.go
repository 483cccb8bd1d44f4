package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/billsyncorg/billsync/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// TokenKey is the context key for the raw bearer token,
	// kept so logout can blacklist it.
	TokenKey contextKey = "token"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetToken extracts the raw bearer token from the context.
// Returns empty string if not found.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

// TokenChecker reports whether a token has been revoked by logout.
type TokenChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// RequireAuth returns a middleware that validates bearer JWT tokens and
// requires authentication. It extracts the token from the Authorization
// header, validates it, rejects blacklisted tokens, and adds the user ID,
// email, and token to the request context.
func RequireAuth(jwtManager *auth.JWTManager, blacklist TokenChecker, onReject func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				onReject(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				onReject(w, auth.ErrInvalidToken)
				return
			}
			tokenString := parts[1]

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				onReject(w, err)
				return
			}

			revoked, err := blacklist.IsTokenBlacklisted(r.Context(), tokenString)
			if err != nil {
				slog.Error("Token blacklist check failed", "error", err)
				onReject(w, auth.ErrInvalidToken)
				return
			}
			if revoked {
				onReject(w, auth.ErrTokenBlacklisted)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = context.WithValue(ctx, TokenKey, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
