package repository

import (
	"context"
	"errors"
	"fmt"

	"chatboard/internal/domain/chat"
	"chatboard/internal/domain/message"
	chatboard_errors "chatboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const chatColumns = `id, chatname, members, messages, created_at, updated_at`

type PostgresChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	if c.Members == nil {
		c.Members = []uuid.UUID{}
	}
	if c.Messages == nil {
		c.Messages = []uuid.UUID{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO chats (`+chatColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Chatname, c.Members, c.Messages, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return chatboard_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	row := r.db.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = $1`, id)
	return scanChat(row)
}

func (r *PostgresChatRepository) List(ctx context.Context) ([]chat.Chat, error) {
	rows, err := r.db.Query(ctx, `SELECT `+chatColumns+` FROM chats ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]chat.Chat, 0)
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (r *PostgresChatRepository) AddMember(ctx context.Context, chatID, userID uuid.UUID) (chat.Chat, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE chats
		    SET members = array_append(members, $2::uuid), updated_at = now()
		  WHERE id = $1 AND NOT ($2::uuid = ANY (members))
		RETURNING `+chatColumns,
		chatID, userID,
	)
	c, err := scanChat(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, chatboard_errors.ErrNotFound) {
		return chat.Chat{}, err
	}

	// No row matched: either the chat is gone or the user is already in it.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM chats WHERE id = $1)`, chatID).Scan(&exists); err != nil {
		return chat.Chat{}, err
	}
	if !exists {
		return chat.Chat{}, chatboard_errors.ErrNotFound
	}
	return chat.Chat{}, chatboard_errors.ErrConflict
}

func (r *PostgresChatRepository) AppendMessage(ctx context.Context, m *message.Message) (chat.Chat, error) {
	var updated chat.Chat
	err := WithTx(ctx, r.db, func(tx DBTX) error {
		// Row lock orders concurrent appends to the same chat.
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM chats WHERE id = $1 FOR UPDATE`, m.ChatID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: chat not found", chatboard_errors.ErrNotFound)
			}
			return err
		}

		if err := insertMessage(ctx, tx, m); err != nil {
			return err
		}

		row := tx.QueryRow(ctx,
			`UPDATE chats
			    SET messages = array_append(messages, $2::uuid), updated_at = now()
			  WHERE id = $1
			RETURNING `+chatColumns,
			m.ChatID, m.ID,
		)
		c, err := scanChat(row)
		if err != nil {
			return fmt.Errorf("append message %s to chat %s: %w", m.ID, m.ChatID, err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return chat.Chat{}, err
	}
	return updated, nil
}

func scanChat(row pgx.Row) (chat.Chat, error) {
	var c chat.Chat
	err := row.Scan(&c.ID, &c.Chatname, &c.Members, &c.Messages, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Chat{}, chatboard_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	if c.Members == nil {
		c.Members = []uuid.UUID{}
	}
	if c.Messages == nil {
		c.Messages = []uuid.UUID{}
	}
	return c, nil
}
