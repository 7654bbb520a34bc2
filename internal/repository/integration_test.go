//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"calendar-be/internal/database"
	"calendar-be/internal/entities"
	"calendar-be/internal/repository"
)

func TestRepositories_Postgres(t *testing.T) {
	ctx := context.Background()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("calendar_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(ctx, db))

	users := repository.NewUserRepository(db)
	events := repository.NewEventRepository(db)

	alice := &entities.User{ID: uuid.New(), Name: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, alice))
	assert.False(t, alice.CreatedAt.IsZero())

	t.Run("unique constraints", func(t *testing.T) {
		err := users.Create(ctx, &entities.User{ID: uuid.New(), Name: "other", Email: "alice@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

		err = users.Create(ctx, &entities.User{ID: uuid.New(), Name: "alice", Email: "other@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, repository.ErrDuplicateName)
	})

	t.Run("user lookups", func(t *testing.T) {
		byEmail, err := users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)

		byName, err := users.FindByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)

		_, err = users.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("event lifecycle", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		event := &entities.Event{
			ID:        uuid.New(),
			OwnerID:   alice.ID,
			Title:     "Standup",
			StartTime: start,
			EndTime:   start.Add(15 * time.Minute),
		}
		require.NoError(t, events.Create(ctx, event))

		got, err := events.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.OwnerID)
		assert.Equal(t, "", got.Description)
		assert.True(t, start.Equal(got.StartTime))

		got.Title = "Standup v2"
		got.Description = "moved"
		require.NoError(t, events.Update(ctx, got))

		list, err := events.FindByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Standup v2", list[0].Title)
		assert.Equal(t, event.ID, list[0].ID)

		require.NoError(t, events.Delete(ctx, got))
		assert.ErrorIs(t, events.Delete(ctx, got), repository.ErrNotFound)

		_, err = events.FindByID(ctx, event.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
