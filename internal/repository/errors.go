package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already taken")
	ErrDuplicateName  = errors.New("name already taken")
)

const (
	uniqueViolation pq.ErrorCode = "23505"

	usersEmailKey = "users_email_key"
	usersNameKey  = "users_name_key"
)

// uniqueConstraint returns the violated constraint name when err is a
// unique_violation reported by PostgreSQL.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
