// Package adapters provides repository implementations for the user feature.
package adapters

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"user_manager/internal/feature/user/domain/entity"
	"user_manager/internal/feature/user/usecase"
)

// userGorm is the GORM implementation of the UserRepository interface.
// Every call runs on a fresh session; mutating calls run inside their own transaction.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a new instance of userGorm with the given connection.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Save inserts the user and populates its ID.
// Any ID already set on the user is discarded so storage assigns a fresh one.
func (r *userGorm) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("save user: nil user")
	}
	user.ID = 0
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		user.ID = 0
		return r.fail("save", err)
	}
	slog.Info("user saved", "user", user)
	return nil
}

// FindByID retrieves a user by ID. A missing row is reported through found, not as an error.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, bool, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Info("user not found", "id", id)
			return nil, false, nil
		}
		return nil, false, r.fail("find", err)
	}
	slog.Info("user found", "user", &u)
	return &u, true, nil
}

// FindAll returns all users ordered by ID.
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, r.fail("list", err)
	}
	slog.Info("users listed", "count", len(users))
	return users, nil
}

// Update overwrites name, email and age of the stored row with the values on user.
func (r *userGorm) Update(ctx context.Context, user *entity.User) error {
	if !user.HasIdentity() {
		return usecase.ErrMissingIdentity
	}
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"name":  user.Name,
				"email": user.Email,
				"age":   user.Age,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
	if errors.Is(err, usecase.ErrUserNotFound) {
		slog.Warn("update target not found", "id", user.ID)
		return err
	}
	if err != nil {
		return r.fail("update", err)
	}
	slog.Info("user updated", "user", user)
	return nil
}

// Delete removes the user with the given ID if it exists.
// The row is looked up first so a missing ID is reported as deleted=false instead of an error.
func (r *userGorm) Delete(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, usecase.ErrMissingIdentity
	}
	deleted := false
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		var u entity.User
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&u).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, r.fail("delete", err)
	}
	if !deleted {
		slog.Info("user not found", "id", id)
		return false, nil
	}
	slog.Info("user deleted", "id", id)
	return true, nil
}

// inTx runs fn in a transaction bound to ctx.
// gorm commits when fn returns nil and rolls back on an error or a panic,
// so the transaction is always closed when inTx returns.
func (r *userGorm) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// fail logs a storage failure and wraps it in a StorageError.
func (r *userGorm) fail(op string, err error) error {
	se := &usecase.StorageError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Code = pgErr.Code
	}
	slog.Error("user storage failure", "op", op, "code", se.Code, "error", err)
	return se
}
