package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parleychat/parley-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

const messageColumns = `id, content, timestamp, is_edited, sender_id, room_id`

func scanMessage(row *sql.Row) (model.Message, error) {
	var msg model.Message
	err := row.Scan(&msg.ID, &msg.Content, &msg.Timestamp, &msg.IsEdited, &msg.SenderID, &msg.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Message{}, model.ErrNotFound
		}
		return model.Message{}, err
	}
	return msg, nil
}

func (r *MessageRepository) Create(ctx context.Context, roomID, senderID int64, content string) (model.Message, error) {
	query := `INSERT INTO messages (content, sender_id, room_id)
			  VALUES ($1, $2, $3)
			  RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, content, senderID, roomID))
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Message{}, err
		}
		return model.Message{}, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// ListByRoom returns the room's messages oldest-first.
func (r *MessageRepository) ListByRoom(ctx context.Context, roomID int64, skip, limit int) ([]model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
			  WHERE room_id = $1
			  ORDER BY timestamp, id OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, roomID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.Timestamp, &msg.IsEdited, &msg.SenderID, &msg.RoomID); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) UpdateContent(ctx context.Context, id int64, content string) (model.Message, error) {
	query := `UPDATE messages SET content = $2, is_edited = TRUE
			  WHERE id = $1
			  RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id, content))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Message{}, err
		}
		return model.Message{}, fmt.Errorf("failed to update message: %w", err)
	}
	return msg, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM messages WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}
