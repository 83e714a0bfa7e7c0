package repository

import (
	"context"
	"errors"
	"fmt"

	"chatboard/internal/domain/message"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const messageColumns = `id, text, chat_id, author_id, created_at, updated_at`

type PostgresMessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	row := r.db.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	return scanMessage(row)
}

// GetByIDs returns the messages found for ids in no particular order.
// Ids without a record are simply absent from the result.
func (r *PostgresMessageRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]message.Message, error) {
	if len(ids) == 0 {
		return []message.Message{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = ANY ($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE chat_id = $1 ORDER BY created_at, id`,
		chatID,
	)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// insertMessage is only reachable through ChatRepository.AppendMessage so a
// message row never exists without its chat reference.
func insertMessage(ctx context.Context, db DBTX, m *message.Message) error {
	_, err := db.Exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Text, m.ChatID, m.AuthorID, m.CreatedAt, m.UpdatedAt,
	)
	return messageInsertError(err)
}

const (
	messageChatFK   = "messages_chat_id_fkey"
	messageAuthorFK = "messages_author_id_fkey"
)

func messageInsertError(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := foreignKeyConstraint(err); ok {
		switch constraint {
		case messageAuthorFK:
			return fmt.Errorf("%w: author not found", chatboard_errors.ErrNotFound)
		case messageChatFK:
			return fmt.Errorf("%w: chat not found", chatboard_errors.ErrNotFound)
		default:
			return fmt.Errorf("%w: %s", chatboard_errors.ErrNotFound, constraint)
		}
	}
	if isUniqueViolation(err) {
		return chatboard_errors.ErrAlreadyExists
	}
	return err
}

func collectMessages(rows pgx.Rows) ([]message.Message, error) {
	defer rows.Close()

	messages := make([]message.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func scanMessage(row pgx.Row) (message.Message, error) {
	var m message.Message
	err := row.Scan(&m.ID, &m.Text, &m.ChatID, &m.AuthorID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return message.Message{}, chatboard_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}
