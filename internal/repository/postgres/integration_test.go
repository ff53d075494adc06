//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/parleychat/parley-server/internal/model"
	repo "github.com/parleychat/parley-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "parley_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/parley_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(t *testing.T, conn *repo.Connection, name string) model.User {
	t.Helper()
	ur := repo.NewUserRepository(conn)
	user, err := ur.Create(context.Background(), model.User{
		Username:       name,
		Email:          name + "@example.com",
		HashedPassword: "hashed",
	})
	require.NoError(t, err)
	return user
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		alice := createUser(t, conn, "alice")
		require.True(t, alice.IsActive)

		byEmail, err := ur.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byEmail.ID)

		byEither, err := ur.GetByUsernameOrEmail(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byEither.ID)

		renamed, err := ur.UpdateUsername(ctx, alice.ID, "alice2")
		require.NoError(t, err)
		require.Equal(t, "alice2", renamed.Username)
	})

	t.Run("chatroom_repository", func(t *testing.T) {
		cr := repo.NewChatRoomRepository(conn.DB)
		owner := createUser(t, conn, "owner")
		member := createUser(t, conn, "member")

		room, err := cr.Create(ctx, model.ChatRoom{Name: "general", OwnerID: owner.ID})
		require.NoError(t, err)

		// Owner membership is created with the room.
		_, err = cr.GetParticipant(ctx, owner.ID, room.ID)
		require.NoError(t, err)

		_, err = cr.AddParticipant(ctx, member.ID, room.ID)
		require.NoError(t, err)

		participants, err := cr.ListParticipants(ctx, room.ID, 0, 10)
		require.NoError(t, err)
		require.Len(t, participants, 2)

		require.NoError(t, cr.RemoveParticipant(ctx, member.ID, room.ID))
		_, err = cr.GetParticipant(ctx, member.ID, room.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		dm, err := cr.CreateDirectMessage(ctx, model.ChatRoom{
			Name: "DM", IsPrivate: true, IsDirectMessage: true, OwnerID: owner.ID,
		}, owner.ID, member.ID)
		require.NoError(t, err)

		found, err := cr.GetDirectMessage(ctx, member.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, dm.ID, found.ID)
	})

	t.Run("message_repository", func(t *testing.T) {
		cr := repo.NewChatRoomRepository(conn.DB)
		mr := repo.NewMessageRepository(conn)
		sender := createUser(t, conn, "sender")

		room, err := cr.Create(ctx, model.ChatRoom{Name: "msgs", OwnerID: sender.ID})
		require.NoError(t, err)

		msg, err := mr.Create(ctx, room.ID, sender.ID, "hello")
		require.NoError(t, err)
		require.False(t, msg.IsEdited)

		edited, err := mr.UpdateContent(ctx, msg.ID, "hello again")
		require.NoError(t, err)
		require.True(t, edited.IsEdited)

		list, err := mr.ListByRoom(ctx, room.ID, 0, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, mr.Delete(ctx, msg.ID))
	})

	t.Run("refresh_token_repository", func(t *testing.T) {
		rr := repo.NewRefreshTokenRepository(conn)
		user := createUser(t, conn, "sessions")

		session := uuid.NewString()
		jti := uuid.NewString()
		require.NoError(t, rr.Create(ctx, model.RefreshToken{
			JTI: jti, UserID: user.ID, SessionID: session,
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		token, err := rr.GetByJTI(ctx, jti)
		require.NoError(t, err)
		require.False(t, token.Revoked)

		require.NoError(t, rr.RevokeBySessionID(ctx, session))
		token, err = rr.GetByJTI(ctx, jti)
		require.NoError(t, err)
		require.True(t, token.Revoked)
	})

	t.Run("blacklist_repository", func(t *testing.T) {
		br := repo.NewBlacklistRepository(conn)

		live := uuid.NewString()
		require.NoError(t, br.Create(ctx, model.BlacklistedToken{
			Token: "live-token", JTI: live, ExpiresAt: time.Now().Add(time.Hour),
		}))
		stale := uuid.NewString()
		require.NoError(t, br.Create(ctx, model.BlacklistedToken{
			Token: "stale-token", JTI: stale, ExpiresAt: time.Now().Add(-time.Hour),
		}))

		require.NoError(t, br.DeleteExpired(ctx))

		_, err := br.GetByJTI(ctx, live)
		require.NoError(t, err)
		_, err = br.GetByJTI(ctx, stale)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
