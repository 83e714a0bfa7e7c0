package repository

import (
	"errors"
	"testing"

	chatboard_errors "chatboard/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMessageInsertError(t *testing.T) {
	t.Run("missing author", func(t *testing.T) {
		err := messageInsertError(&pgconn.PgError{Code: "23503", ConstraintName: messageAuthorFK})
		require.ErrorIs(t, err, chatboard_errors.ErrNotFound)
		require.Contains(t, err.Error(), "author not found")
	})

	t.Run("missing chat", func(t *testing.T) {
		err := messageInsertError(&pgconn.PgError{Code: "23503", ConstraintName: messageChatFK})
		require.ErrorIs(t, err, chatboard_errors.ErrNotFound)
		require.Contains(t, err.Error(), "chat not found")
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := messageInsertError(&pgconn.PgError{Code: "23505"})
		require.ErrorIs(t, err, chatboard_errors.ErrAlreadyExists)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		require.Equal(t, cause, messageInsertError(cause))
		require.NoError(t, messageInsertError(nil))
	})
}
