package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"calendar-be/internal/entities"
)

// EventRepository defines the interface for event database operations
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	Update(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Event, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Event, error)
	Delete(ctx context.Context, event *entities.Event) error
}

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create inserts a new event into the database
func (r *eventRepository) Create(ctx context.Context, event *entities.Event) error {
	query := `
		INSERT INTO events (id, user_id, title, description, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.OwnerID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an event. The owner column is
// never touched.
func (r *eventRepository) Update(ctx context.Context, event *entities.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.ID,
	).Scan(&event.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// FindByID finds an event by its identifier regardless of owner
func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entities.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return &event, nil
}

// FindByOwner retrieves all events owned by a user
func (r *eventRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, created_at, updated_at
		FROM events
		WHERE user_id = $1
		ORDER BY start_time ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := make([]entities.Event, 0)
	for rows.Next() {
		var event entities.Event
		err := rows.Scan(
			&event.ID,
			&event.OwnerID,
			&event.Title,
			&event.Description,
			&event.StartTime,
			&event.EndTime,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// Delete removes an event permanently
func (r *eventRepository) Delete(ctx context.Context, event *entities.Event) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, event.ID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
