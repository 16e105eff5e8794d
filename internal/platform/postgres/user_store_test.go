package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

func TestUserStoreCreate(t *testing.T) {
	t.Run("assigns the returned id", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		user := &domain.User{
			Username:       "alice",
			HashedPassword: "$2a$10$hash",
			CreatedAt:      time.Now().UTC(),
		}

		mock.ExpectQuery(`INSERT INTO users \(username, password, created_at\)`).
			WithArgs(user.Username, user.HashedPassword, user.CreatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		require.NoError(t, userStore.Create(context.Background(), user))
		assert.Equal(t, int64(7), user.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to ErrUsernameExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		user := &domain.User{
			Username:       "alice",
			HashedPassword: "$2a$10$hash",
			CreatedAt:      time.Now().UTC(),
		}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolationCode})

		err := userStore.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid user is rejected before any query", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		err := userStore.Create(context.Background(), &domain.User{Username: ""})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("infrastructure failure maps to ErrStorageUnavailable", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		user := &domain.User{
			Username:       "alice",
			HashedPassword: "$2a$10$hash",
			CreatedAt:      time.Now().UTC(),
		}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(sql.ErrConnDone)

		err := userStore.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrStorageUnavailable)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserStoreGetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT id, username, password, created_at\s+FROM users\s+WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
				AddRow(int64(7), "alice", "$2a$10$hash", now))

		user, err := userStore.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "$2a$10$hash", user.HashedPassword)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing maps to ErrUserNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		userStore := NewUserStore(db, nil)

		mock.ExpectQuery(`SELECT id, username, password, created_at`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := userStore.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserStoreGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	userStore := NewUserStore(db, nil)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, username, password, created_at\s+FROM users\s+WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow(int64(7), "alice", "$2a$10$hash", now))

	user, err := userStore.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}
