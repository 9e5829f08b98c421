// Package auth guards routes that need a connected wallet session.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"skillforge/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the wallet it was issued to.
type TokenValidator interface {
	ValidateSession(tokenString string) (*SessionClaims, error)
}

// SessionChecker reports whether the wallet in a token still has a live session.
type SessionChecker interface {
	IsSessionActive(ctx context.Context, address string) bool
}

// SessionClaims is the subset of token claims the middleware needs.
type SessionClaims struct {
	Address string
	JTI     string
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireSession validates the bearer token, checks the session is still
// connected and stores the wallet address in the request context.
// A nil checker skips the liveness check.
func RequireSession(validator TokenValidator, checker SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateSession(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if checker != nil && !checker.IsSessionActive(ctx, claims.Address) {
				logger.WarnContext(ctx, "unauthorized access - wallet disconnected",
					"wallet_address", claims.Address,
					"jti", claims.JTI,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "not_connected", "Wallet session is no longer connected")
				return
			}

			ctx = requestcontext.WithWalletAddress(ctx, claims.Address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
