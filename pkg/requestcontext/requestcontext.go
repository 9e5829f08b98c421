// Package requestcontext carries request-scoped values (request id, time,
// client agent) through context without pulling in transport packages.
package requestcontext

import (
	"context"
	"time"
)

type (
	contextKeyRequestID   struct{}
	contextKeyRequestTime struct{}
	contextKeyClientAgent struct{}
	contextKeyWallet      struct{}
)

// WithRequestID stores the correlation id for the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, requestID)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithTime pins "now" for everything downstream of ctx.
// Tests and workers use it to get a fixed clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

// Now returns the request-scoped time, falling back to time.Now().
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithClientAgent records a short description of the calling client.
func WithClientAgent(ctx context.Context, agent string) context.Context {
	return context.WithValue(ctx, contextKeyClientAgent{}, agent)
}

// ClientAgent returns the client description, or "" if unknown.
func ClientAgent(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyClientAgent{}).(string); ok {
		return v
	}
	return ""
}

// WithWalletAddress records the wallet address of an authenticated session.
func WithWalletAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, contextKeyWallet{}, address)
}

// WalletAddress returns the session wallet address, or "" when unauthenticated.
func WalletAddress(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyWallet{}).(string); ok {
		return v
	}
	return ""
}
