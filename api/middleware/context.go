package middleware

import (
	"context"

	"github.com/Arthur-020/labstock-backend/pkg/session"
)

type contextKey string

const (
	ctxUser      contextKey = "session_user"
	ctxSessionID contextKey = "session_id"
)

// WithUser injects the authenticated identity into the context.
func WithUser(ctx context.Context, user *session.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the authenticated identity, or nil on
// unauthenticated requests.
func UserFromContext(ctx context.Context) *session.User {
	if ctx == nil {
		return nil
	}
	if user, ok := ctx.Value(ctxUser).(*session.User); ok {
		return user
	}
	return nil
}

// WithSessionID injects the opaque session identifier so logout can
// destroy the right session.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// SessionIDFromContext returns the request's session identifier.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if sessionID, ok := ctx.Value(ctxSessionID).(string); ok {
		return sessionID
	}
	return ""
}
