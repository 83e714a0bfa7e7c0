package services

import (
	"context"

	"chatboard/internal/domain/session"
	"chatboard/pkg/logger"
)

type ctxKey string

var sessionKey ctxKey = "session"

// WithSession stores the resolved session in ctx. The user id is also
// exposed under logger.UserIdKey so log lines carry it.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sess)
	return context.WithValue(ctx, logger.UserIdKey, sess.UserID.String())
}

// SessionFromContext returns the request's session, or nil for anonymous callers.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	if !ok {
		return nil
	}
	return &sess
}
