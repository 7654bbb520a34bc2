package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendar-be/internal/entities"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	user := &entities.User{
		ID:           uuid.New(),
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$hash",
	}
	createdAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID.String(), user.Name, user.Email, user.PasswordHash).
					WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
			},
		},
		{
			name: "duplicate email",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name: "duplicate name",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_name_key"})
			},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewUserRepository(db).Create(context.Background(), user)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.True(t, createdAt.Equal(user.CreatedAt))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))

	err := NewUserRepository(db).Create(context.Background(), &entities.User{ID: uuid.New()})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateEmail))
	assert.False(t, errors.Is(err, ErrDuplicateName))
}

func TestUserRepository_Find(t *testing.T) {
	id := uuid.New()
	createdAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "email", "password_hash", "created_at"}

	lookups := []struct {
		name   string
		column string
		arg    string
		find   func(r UserRepository, v string) (*entities.User, error)
	}{
		{
			name:   "by email",
			column: "email",
			arg:    "alice@example.com",
			find: func(r UserRepository, v string) (*entities.User, error) {
				return r.FindByEmail(context.Background(), v)
			},
		},
		{
			name:   "by name",
			column: "name",
			arg:    "alice",
			find: func(r UserRepository, v string) (*entities.User, error) {
				return r.FindByName(context.Background(), v)
			},
		},
	}

	for _, lk := range lookups {
		t.Run(lk.name+" found", func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(`SELECT (.+) FROM users WHERE ` + lk.column + ` = \$1`).
				WithArgs(lk.arg).
				WillReturnRows(sqlmock.NewRows(columns).
					AddRow(id.String(), "alice", "alice@example.com", "hash", createdAt))

			user, err := lk.find(NewUserRepository(db), lk.arg)
			require.NoError(t, err)
			assert.Equal(t, id, user.ID)
			assert.Equal(t, "alice", user.Name)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, "hash", user.PasswordHash)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(lk.name+" missing", func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(`SELECT (.+) FROM users`).
				WithArgs(lk.arg).
				WillReturnRows(sqlmock.NewRows(columns))

			user, err := lk.find(NewUserRepository(db), lk.arg)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, user)
		})
	}
}
