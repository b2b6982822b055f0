package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/userhub/internal/apperrors"
	"github.com/example/userhub/internal/models"
	"github.com/example/userhub/internal/repository"
)

type UserRepo struct {
	DB DBTX
}

const ensureSchema = `-- name: EnsureSchema
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    created_at timestamptz NOT NULL DEFAULT now(),
    username varchar(255) UNIQUE NOT NULL,
    password_hash varchar(255) NOT NULL
)
`

// EnsureSchema creates the users table when it is missing.
// The startup migration creates the same table; this exists so the home page
// can probe the database and heal a dropped schema.
func (r *UserRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, ensureSchema)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const createUser = `-- name: CreateUser
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
RETURNING id, created_at, username, password_hash
`

func (r *UserRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, arg.Username, arg.PasswordHash)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user, apperrors.ErrUserAlreadyExists
		}

		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const listUsers = `-- name: ListUsers
SELECT id, created_at, username, password_hash FROM users
ORDER BY id
`

func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, _ := r.DB.Query(ctx, listUsers)
	users, err := pgx.CollectRows(rows, rowToUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

const getUserByID = `-- name: GetUserByID
SELECT id, created_at, username, password_hash FROM users
WHERE id = $1
`

func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByID, id)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const getUserByUsername = `-- name: GetUserByUsername
SELECT id, created_at, username, password_hash FROM users
WHERE username = $1
`

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByUsername, username)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const updateUser = `-- name: UpdateUser
UPDATE users SET username = $1
WHERE id = $2
`

const updateUserWithPassword = `-- name: UpdateUserWithPassword
UPDATE users SET username = $1, password_hash = $2
WHERE id = $3
`

// UpdateUser rewrites the username and, when a hash is supplied, the password.
// Zero affected rows is not an error.
func (r *UserRepo) UpdateUser(ctx context.Context, arg repository.UpdateUserParams) error {
	var err error
	switch arg.PasswordHash {
	case "":
		_, err = r.DB.Exec(ctx, updateUser, arg.Username, arg.ID)
	default:
		_, err = r.DB.Exec(ctx, updateUserWithPassword, arg.Username, arg.PasswordHash, arg.ID)
	}

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.ErrUserAlreadyExists
		}

		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const deleteUser = `-- name: DeleteUser
DELETE FROM users
WHERE id = $1
`

// DeleteUser removes the user. Deleting an id that does not exist is a no-op.
func (r *UserRepo) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, deleteUser, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.PasswordHash)
	return u, err
}
