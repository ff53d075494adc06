package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley-server/internal/model"
)

func messageRows(messages ...model.Message) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "content", "timestamp", "is_edited", "sender_id", "room_id"})
	for _, m := range messages {
		rows.AddRow(m.ID, m.Content, m.Timestamp, m.IsEdited, m.SenderID, m.RoomID)
	}
	return rows
}

func TestMessageRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	sent := time.Now()
	mock.ExpectQuery(`(?s)^INSERT INTO messages \(content, sender_id, room_id\).*RETURNING`).
		WithArgs("hello", int64(2), int64(7)).
		WillReturnRows(messageRows(model.Message{
			ID: 11, Content: "hello", Timestamp: sent, SenderID: 2, RoomID: 7,
		}))

	msg, err := repo.Create(context.Background(), 7, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(11), msg.ID)
	assert.False(t, msg.IsEdited)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListByRoom_OldestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM messages.*WHERE room_id = \$1.*ORDER BY timestamp, id OFFSET \$2 LIMIT \$3$`).
		WithArgs(int64(7), 0, 50).
		WillReturnRows(messageRows(
			model.Message{ID: 11, Content: "first", RoomID: 7},
			model.Message{ID: 12, Content: "second", RoomID: 7},
		))

	messages, err := repo.ListByRoom(context.Background(), 7, 0, 50)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_UpdateContent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	q := `(?s)^UPDATE messages SET content = \$2, is_edited = TRUE.*RETURNING`

	t.Run("marks edited", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(int64(11), "edited").
			WillReturnRows(messageRows(model.Message{
				ID: 11, Content: "edited", IsEdited: true, SenderID: 2, RoomID: 7,
			}))

		msg, err := repo.UpdateContent(context.Background(), 11, "edited")
		require.NoError(t, err)
		assert.True(t, msg.IsEdited)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(int64(99), "edited").
			WillReturnRows(messageRows())

		_, err := repo.UpdateContent(context.Background(), 99, "edited")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Delete_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectExec(`^DELETE FROM messages WHERE id = \$1$`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 99), model.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
