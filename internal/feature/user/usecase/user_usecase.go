package usecase

import (
	"context"
	"log/slog"

	"user_manager/internal/feature/user/domain/entity"
)

// UserUsecase forwards user operations to the repository and logs them.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(r UserRepository) *UserUsecase {
	return &UserUsecase{repo: r}
}

// CreateUser persists a new user and returns it with its assigned ID.
func (u *UserUsecase) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	slog.Info("creating user", "user", user)
	if err := u.repo.Save(ctx, user); err != nil {
		slog.Error("create user failed", "error", err)
		return nil, err
	}
	slog.Info("user created", "id", user.ID)
	return user, nil
}

// GetUserByID looks up a user by ID.
func (u *UserUsecase) GetUserByID(ctx context.Context, id uint) (*entity.User, bool, error) {
	slog.Info("getting user by id", "id", id)
	user, found, err := u.repo.FindByID(ctx, id)
	if err != nil {
		slog.Error("get user failed", "id", id, "error", err)
		return nil, false, err
	}
	slog.Info("get user finished", "id", id, "found", found)
	return user, found, nil
}

// GetAllUsers returns every stored user.
func (u *UserUsecase) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	slog.Info("getting all users")
	users, err := u.repo.FindAll(ctx)
	if err != nil {
		slog.Error("get all users failed", "error", err)
		return nil, err
	}
	slog.Info("get all users finished", "count", len(users))
	return users, nil
}

// UpdateUser stores the given user over its existing row and returns it.
func (u *UserUsecase) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	slog.Info("updating user", "user", user)
	if err := u.repo.Update(ctx, user); err != nil {
		slog.Error("update user failed", "id", user.ID, "error", err)
		return nil, err
	}
	slog.Info("user updated", "id", user.ID)
	return user, nil
}

// DeleteUser removes the user with the given ID and reports whether it existed.
func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) (bool, error) {
	slog.Info("deleting user", "id", id)
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		slog.Error("delete user failed", "id", id, "error", err)
		return false, err
	}
	slog.Info("delete user finished", "id", id, "deleted", deleted)
	return deleted, nil
}
