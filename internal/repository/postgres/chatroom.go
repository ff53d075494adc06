package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parleychat/parley-server/internal/model"
)

var _ model.ChatRoomStore = (*ChatRoomRepository)(nil)

// ChatRoomRepository needs the full *sql.DB rather than DBTX: room
// creation inserts the room and its participants in one transaction.
type ChatRoomRepository struct {
	db *sql.DB
}

func NewChatRoomRepository(db *sql.DB) *ChatRoomRepository {
	return &ChatRoomRepository{
		db: db,
	}
}

const roomColumns = `id, name, is_private, is_direct_message, owner_id`

func scanRoom(row *sql.Row) (model.ChatRoom, error) {
	var room model.ChatRoom
	err := row.Scan(&room.ID, &room.Name, &room.IsPrivate, &room.IsDirectMessage, &room.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ChatRoom{}, model.ErrNotFound
		}
		return model.ChatRoom{}, err
	}
	return room, nil
}

func insertRoom(ctx context.Context, tx DBTX, room model.ChatRoom) (model.ChatRoom, error) {
	query := `INSERT INTO chatrooms (name, is_private, is_direct_message, owner_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + roomColumns

	return scanRoom(tx.QueryRowContext(ctx, query,
		room.Name, room.IsPrivate, room.IsDirectMessage, room.OwnerID))
}

func insertParticipant(ctx context.Context, tx DBTX, userID, roomID int64) error {
	query := `INSERT INTO chatroom_participants (user_id, room_id) VALUES ($1, $2)`

	_, err := tx.ExecContext(ctx, query, userID, roomID)
	return err
}

// Create inserts the room and its owner's membership atomically.
func (r *ChatRoomRepository) Create(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	var saved model.ChatRoom
	err := withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var err error
		saved, err = insertRoom(ctx, tx, room)
		if err != nil {
			return err
		}
		return insertParticipant(ctx, tx, room.OwnerID, saved.ID)
	})
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to create chatroom: %w", err)
	}
	return saved, nil
}

func (r *ChatRoomRepository) GetByID(ctx context.Context, id int64) (model.ChatRoom, error) {
	query := `SELECT ` + roomColumns + ` FROM chatrooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ChatRoom{}, err
		}
		return model.ChatRoom{}, fmt.Errorf("failed to get chatroom: %w", err)
	}
	return room, nil
}

func (r *ChatRoomRepository) List(ctx context.Context, skip, limit int, isPrivate *bool) ([]model.ChatRoom, error) {
	query := `SELECT ` + roomColumns + ` FROM chatrooms ORDER BY id OFFSET $1 LIMIT $2`
	args := []any{skip, limit}
	if isPrivate != nil {
		query = `SELECT ` + roomColumns + ` FROM chatrooms WHERE is_private = $3 ORDER BY id OFFSET $1 LIMIT $2`
		args = append(args, *isPrivate)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chatrooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.ChatRoom
	for rows.Next() {
		var room model.ChatRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.IsPrivate, &room.IsDirectMessage, &room.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan chatroom: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chatrooms: %w", err)
	}
	return rooms, nil
}

func (r *ChatRoomRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM chatrooms WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete chatroom: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete chatroom: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ChatRoomRepository) AddParticipant(ctx context.Context, userID, roomID int64) (model.Participant, error) {
	query := `INSERT INTO chatroom_participants (user_id, room_id)
			  VALUES ($1, $2)
			  RETURNING id, user_id, room_id, joined_at`

	var p model.Participant
	err := r.db.QueryRowContext(ctx, query, userID, roomID).
		Scan(&p.ID, &p.UserID, &p.RoomID, &p.JoinedAt)
	if err != nil {
		return model.Participant{}, fmt.Errorf("failed to add participant: %w", err)
	}
	return p, nil
}

func (r *ChatRoomRepository) GetParticipant(ctx context.Context, userID, roomID int64) (model.Participant, error) {
	query := `SELECT p.id, p.user_id, p.room_id, p.joined_at, u.username, c.name
			  FROM chatroom_participants p
			  JOIN users u ON u.id = p.user_id
			  JOIN chatrooms c ON c.id = p.room_id
			  WHERE p.user_id = $1 AND p.room_id = $2`

	var p model.Participant
	err := r.db.QueryRowContext(ctx, query, userID, roomID).
		Scan(&p.ID, &p.UserID, &p.RoomID, &p.JoinedAt, &p.Username, &p.RoomName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Participant{}, model.ErrNotFound
		}
		return model.Participant{}, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

func (r *ChatRoomRepository) ListParticipants(ctx context.Context, roomID int64, skip, limit int) ([]model.Participant, error) {
	query := `SELECT p.id, p.user_id, p.room_id, p.joined_at, u.username, c.name
			  FROM chatroom_participants p
			  JOIN users u ON u.id = p.user_id
			  JOIN chatrooms c ON c.id = p.room_id
			  WHERE p.room_id = $1
			  ORDER BY p.id OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, roomID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.UserID, &p.RoomID, &p.JoinedAt, &p.Username, &p.RoomName); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (r *ChatRoomRepository) RemoveParticipant(ctx context.Context, userID, roomID int64) error {
	query := `DELETE FROM chatroom_participants WHERE user_id = $1 AND room_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, roomID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// GetDirectMessage finds the DM room whose participants are exactly the
// two given users.
func (r *ChatRoomRepository) GetDirectMessage(ctx context.Context, userID, otherID int64) (model.ChatRoom, error) {
	query := `SELECT c.id, c.name, c.is_private, c.is_direct_message, c.owner_id
			  FROM chatrooms c
			  JOIN chatroom_participants p ON p.room_id = c.id
			  WHERE c.is_direct_message AND p.user_id IN ($1, $2)
			  GROUP BY c.id, c.name, c.is_private, c.is_direct_message, c.owner_id
			  HAVING COUNT(DISTINCT p.user_id) = 2`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, userID, otherID))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ChatRoom{}, err
		}
		return model.ChatRoom{}, fmt.Errorf("failed to get direct message room: %w", err)
	}
	return room, nil
}

// CreateDirectMessage inserts the DM room and both memberships atomically.
func (r *ChatRoomRepository) CreateDirectMessage(ctx context.Context, room model.ChatRoom, userID, otherID int64) (model.ChatRoom, error) {
	var saved model.ChatRoom
	err := withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var err error
		saved, err = insertRoom(ctx, tx, room)
		if err != nil {
			return err
		}
		if err := insertParticipant(ctx, tx, userID, saved.ID); err != nil {
			return err
		}
		return insertParticipant(ctx, tx, otherID, saved.ID)
	})
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to create direct message room: %w", err)
	}
	return saved, nil
}
