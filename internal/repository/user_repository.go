package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"calendar-be/internal/entities"
)

// UserRepository defines the interface for user database operations.
// It performs no existence checks of its own; uniqueness of email and
// name is enforced by the schema and reported as ErrDuplicateEmail or
// ErrDuplicateName.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByName(ctx context.Context, name string) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			switch constraint {
			case usersEmailKey:
				return ErrDuplicateEmail
			case usersNameKey:
				return ErrDuplicateName
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.findOne(ctx, query, email)
}

// FindByName finds a user by name
func (r *userRepository) FindByName(ctx context.Context, name string) (*entities.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE name = $1
	`
	return r.findOne(ctx, query, name)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
