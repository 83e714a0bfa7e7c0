package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chatboard/internal/domain/session"
	"chatboard/internal/repository"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: session:{session_id}, TTL = remaining session lifetime.

// SessionStore keeps login sessions in Redis.
type SessionStore struct {
	client *goredis.Client
}

func NewSessionStore(client *goredis.Client) repository.SessionRepository {
	return &SessionStore{client: client}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("session:%s", id.String())
}

// Create stores a session until its expiry time.
func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return chatboard_errors.ErrInvalidInput
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err()
}

// Get retrieves a session. A missing key means the session expired or was revoked.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Session{}, chatboard_errors.ErrNotFound
	}
	if err != nil {
		return session.Session{}, err
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// SetChat records the current chat of a session. The read and the write run
// under WATCH so a concurrent logout is not resurrected.
func (s *SessionStore) SetChat(ctx context.Context, id uuid.UUID, chatID uuid.UUID) (session.Session, error) {
	key := sessionKey(id)
	var updated session.Session

	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return chatboard_errors.ErrNotFound
		}
		if err != nil {
			return err
		}

		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return err
		}
		sess.ChatID = uuid.NullUUID{UUID: chatID, Valid: true}

		encoded, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.SetArgs(ctx, key, encoded, goredis.SetArgs{KeepTTL: true})
			return nil
		})
		if err != nil {
			return err
		}
		updated = sess
		return nil
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return session.Session{}, chatboard_errors.ErrConflict
	}
	if err != nil {
		return session.Session{}, err
	}
	return updated, nil
}

// Delete revokes a session.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
