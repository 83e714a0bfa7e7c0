package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ContextFields(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := context.WithValue(context.Background(), RequestIdKey, "req-1")
	ctx = context.WithValue(ctx, UserIdKey, "user-1")

	l.InfoCtx(ctx, "chat created", zap.String("chat_id", "c-1"))

	req.Equal(1, logs.Len())
	entry := logs.All()[0]
	req.Equal("chat created", entry.Message)
	fields := entry.ContextMap()
	req.Equal("req-1", fields["request_id"])
	req.Equal("user-1", fields["user_id"])
	req.Equal("c-1", fields["chat_id"])
}

func TestLogger_NilContext(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	l.WarnCtx(nil, "no context")

	req.Equal(1, logs.Len())
	req.Empty(logs.All()[0].ContextMap())
}
