package repository

import (
	"context"

	"github.com/example/userhub/internal/models"
)

type CreateUserParams struct {
	Username     string
	PasswordHash string
}

type UpdateUserParams struct {
	ID       int64
	Username string

	// When empty the stored hash is left untouched
	PasswordHash string
}

// User repository interface
type UserRepo interface {
	// Create the users table if it does not exist yet. Safe to call repeatedly.
	EnsureSchema(ctx context.Context) error

	// Create user
	// If user with the username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// List all users ordered by id
	ListUsers(ctx context.Context) ([]models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// Update user
	// Updating a missing id is not an error: zero rows affected is fine
	UpdateUser(ctx context.Context, arg UpdateUserParams) error

	// Delete user by id
	// Deleting a missing id is not an error
	DeleteUser(ctx context.Context, id int64) error
}
