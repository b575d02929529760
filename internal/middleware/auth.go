package middleware

import (
	"context"
	"net/http"
	"strings"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
)

// TokenDataKey is the key for storing session data in request context.
const TokenDataKey contextKey = "token_data"

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Sessions *service.SessionService
}

// NewAuthMiddleware creates a session authentication middleware with
// injected dependencies. Expects a session token in the X-Token header or
// as an Authorization bearer token.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Token")
			if token == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					token = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if token == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use X-Token header."))
				return
			}

			if cfg.Sessions == nil {
				writeError(w, apierror.Unauthorized("Session service unavailable"))
				return
			}

			tokenData, err := cfg.Sessions.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, apierror.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), TokenDataKey, tokenData)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// GetTokenDataFromContext retrieves session data from request context.
func GetTokenDataFromContext(ctx context.Context) *model.TokenData {
	if data, ok := ctx.Value(TokenDataKey).(*model.TokenData); ok {
		return data
	}
	return nil
}
