package handlers

import (
	"context"
	"net/http"

	"github.com/example/userhub/internal/handlers/middleware"
	"github.com/example/userhub/internal/logger"
	"github.com/example/userhub/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type userService interface {
	// Make sure the users table exists, idempotent
	EnsureSchema(ctx context.Context) error

	// Register user with username and password
	// Has to return apperrors.ErrUserAlreadyExists if user already exists
	Register(ctx context.Context, username string, password string) (models.User, error)

	// List all users
	List(ctx context.Context) ([]models.User, error)

	// Get user by id
	// Has to return apperrors.ErrUserNotFound if user not found
	Get(ctx context.Context, id int64) (models.User, error)

	// Update username and optionally password
	// Updating a missing id is a silent no-op
	Update(ctx context.Context, id int64, username string, password string) error

	// Delete user, deleting a missing id is a silent no-op
	Delete(ctx context.Context, id int64) error

	// Check credentials
	// Has to return apperrors.ErrInvalidCredentials for unknown user or wrong password
	Authenticate(ctx context.Context, username string, password string) (models.User, error)
}

func NewRouter(users userService, l logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleHome(users, l))

	mux.Handle("GET /users", handleListUsers(users, l))
	mux.Handle("GET /users/new", handleNewUserForm())
	mux.Handle("POST /users", handleCreateUser(users, l))
	mux.Handle("GET /users/{id}", handleShowUser(users, l))
	mux.Handle("GET /users/{id}/edit", handleEditUserForm(users, l))
	mux.Handle("PUT /users/{id}", handleUpdateUser(users, l))
	mux.Handle("DELETE /users/{id}", handleDeleteUser(users, l))

	mux.Handle("GET /login", handleLoginForm())
	mux.Handle("POST /login", handleLogin(users, l))
	mux.Handle("POST /logout", handleLogout())

	// Method override wraps the mux so the rewrite happens before dispatch
	return chain(mux,
		middleware.LoggerMiddleware(l),
		middleware.RequestIDMiddleware(),
		middleware.MethodOverrideMiddleware(),
	)
}
