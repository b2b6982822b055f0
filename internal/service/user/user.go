package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/userhub/internal/apperrors"
	"github.com/example/userhub/internal/models"
	"github.com/example/userhub/internal/repository"
)

type UserService struct {
	hasher   PasswordHasher
	userRepo repository.UserRepo
}

func NewService(hasher PasswordHasher, userRepo repository.UserRepo) *UserService {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &UserService{
		hasher:   hasher,
		userRepo: userRepo,
	}
}

// EnsureSchema makes sure the users table exists. Idempotent.
func (s *UserService) EnsureSchema(ctx context.Context) error {
	return s.userRepo.EnsureSchema(ctx)
}

// Register hashes the password and stores the new user
// Returns apperrors.ErrUserAlreadyExists when the username is taken
func (s *UserService) Register(ctx context.Context, username string, password string) (models.User, error) {
	var user models.User
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	user, err = s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return user, err
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// Update rewrites the username and, when password is not empty, the password hash.
// Updating an id that does not exist is a no-op, same as the delete flow.
func (s *UserService) Update(ctx context.Context, id int64, username string, password string) error {
	arg := repository.UpdateUserParams{
		ID:       id,
		Username: username,
	}

	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("can't use this as password, Err: %w", err)
		}
		arg.PasswordHash = hash
	}

	return s.userRepo.UpdateUser(ctx, arg)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.DeleteUser(ctx, id)
}

// Authenticate checks the credentials against the stored hash.
// Unknown usernames and wrong passwords both map to apperrors.ErrInvalidCredentials
// so callers can't tell the cases apart.
func (s *UserService) Authenticate(ctx context.Context, username string, password string) (models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, apperrors.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
