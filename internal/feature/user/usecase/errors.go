// Package usecase implements the service layer for the user feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when an update targets an identity with no stored row.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingIdentity is returned when update or delete is called for a user
	// that was never persisted. It signals a caller bug, not a domain outcome.
	ErrMissingIdentity = errors.New("user has no identity")
)

// StorageError reports a failure of the underlying store during a repository call.
// Mutating calls have already rolled back when it is returned.
// The original error is wrapped, so callers match the cause with errors.Is or
// errors.As, never with ==.
type StorageError struct {
	// Op is the repository operation that failed, e.g. "save".
	Op string
	// Code is the SQLSTATE reported by the database, when known.
	Code string
	// Err is the original storage error.
	Err error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s user: %v (sqlstate %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s user: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
