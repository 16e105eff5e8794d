// Package web contains the HTTP form handlers, session middleware, flash
// message channel and template rendering for the task tracker.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/taskdeck/taskdeck/internal/service/auth"
)

// ContextKey is the key type for request context values.
type ContextKey string

// Context keys for various values
const (
	// SessionContextKey is the context key for the authenticated session claims
	SessionContextKey ContextKey = "session"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID
	traceIDLength = 16
)

// WithSession returns a context carrying the authenticated session claims.
func WithSession(ctx context.Context, claims *auth.SessionClaims) context.Context {
	return context.WithValue(ctx, SessionContextKey, claims)
}

// SessionFromContext returns the session claims carried by ctx, or nil when
// the request is unauthenticated.
func SessionFromContext(ctx context.Context) *auth.SessionClaims {
	claims, ok := ctx.Value(SessionContextKey).(*auth.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// SetTraceID adds a fresh trace ID to the context for correlating logs.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

func generateTraceID() string {
	b := make([]byte, traceIDLength)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
