package usecase

import (
	"context"

	"user_manager/internal/feature/user/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Save inserts a new user and populates its ID.
	Save(ctx context.Context, user *entity.User) error

	// FindByID returns the user with the given ID.
	// found is false, with a nil error, when no row matches.
	FindByID(ctx context.Context, id uint) (user *entity.User, found bool, err error)

	// FindAll returns every stored user. The slice is empty, not nil, when there are none.
	FindAll(ctx context.Context) ([]entity.User, error)

	// Update writes all mutable fields of user to the stored row.
	// It returns ErrUserNotFound when the row does not exist.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given ID.
	// deleted is false, with a nil error, when no row matches.
	Delete(ctx context.Context, id uint) (deleted bool, err error)
}
