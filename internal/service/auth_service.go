package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"calendar-be/internal/entities"
	"calendar-be/internal/models"
	"calendar-be/internal/repository"
)

// passwordCost is fixed; changing it only affects newly stored hashes.
const passwordCost = 12

// bcrypt rejects inputs longer than this many bytes
const bcryptMaxPassword = 72

// TokenIssuer signs access tokens for a user
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID) (string, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserSummary, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (uuid.UUID, error) {
	if err := validateInput(req); err != nil {
		return uuid.Nil, err
	}

	// Email first, then name. The store's unique constraints catch the
	// window between these lookups and the insert.
	if exists, err := s.exists(ctx, s.userRepo.FindByEmail, req.Email); err != nil {
		return uuid.Nil, err
	} else if exists {
		return uuid.Nil, newError(ErrConflict, MsgEmailExists)
	}

	if exists, err := s.exists(ctx, s.userRepo.FindByName, req.Name); err != nil {
		return uuid.Nil, err
	} else if exists {
		return uuid.Nil, newError(ErrConflict, MsgUsernameExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordInput(req.Password), passwordCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	err = s.userRepo.Create(ctx, user)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return uuid.Nil, newError(ErrConflict, MsgEmailExists)
	case errors.Is(err, repository.ErrDuplicateName):
		return uuid.Nil, newError(ErrConflict, MsgUsernameExists)
	case err != nil:
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

// Login verifies credentials and issues an access token. An unknown email
// and a wrong password fail identically.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserSummary, error) {
	if err := validateInput(req); err != nil {
		return "", nil, newError(ErrAuth, MsgBadCredentials)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// Spend one bcrypt comparison so both failure paths cost the same.
		_ = bcrypt.CompareHashAndPassword(s.timingHash(), passwordInput(req.Password))
		return "", nil, newError(ErrAuth, MsgBadCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordInput(req.Password)); err != nil {
		return "", nil, newError(ErrAuth, MsgBadCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, &models.UserSummary{ID: user.ID, Name: user.Name}, nil
}

func (s *authService) exists(ctx context.Context, find func(context.Context, string) (*entities.User, error), value string) (bool, error) {
	_, err := find(ctx, value)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing user: %w", err)
	}
	return true, nil
}

func (s *authService) timingHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), passwordCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

// passwordInput returns the bytes handed to bcrypt. Passwords over bcrypt's
// limit are replaced by their base64 SHA-256 digest; shorter ones are used as is.
func passwordInput(password string) []byte {
	if len(password) <= bcryptMaxPassword {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
