package user

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/example/userhub/internal/apperrors"
	"github.com/example/userhub/internal/repository/postgres"
	"github.com/example/userhub/internal/testutil"
)

func TestUserService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Helper function to create UserService within transaction
	inTx := func(t *testing.T, fn func(s *UserService)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			fn(NewService(DefaultHasher, &postgres.UserRepo{DB: tx}))
		})
	}

	t.Run("Register", func(t *testing.T) {
		t.Run("register ok", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				user, err := s.Register(t.Context(), "test-user", "password123")

				require.NoError(t, err, "creating new user should be ok")
				require.NotEmpty(t, user.ID, "user ID should not be empty")
				require.Equal(t, "test-user", user.Username, "username should match")
				require.NotEmpty(t, user.PasswordHash, "password hash should not be empty")
				require.NotEqual(t, "password123", user.PasswordHash, "password should be hashed")
				require.NotZero(t, user.CreatedAt, "created at should be set")
			})
		})

		t.Run("register duplicate user fail", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				_, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err, "first user creation should succeed")

				_, err = s.Register(t.Context(), "test-user", "different_password")

				require.Error(t, err, "creating duplicate user should fail")
				require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
			})
		})
	})

	t.Run("Authenticate", func(t *testing.T) {
		t.Run("authenticate ok", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				createdUser, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err)

				user, err := s.Authenticate(t.Context(), "test-user", "password123")

				require.NoError(t, err, "login with correct credentials should succeed")
				require.Equal(t, createdUser.ID, user.ID, "user ID should match")
				require.Equal(t, createdUser.Username, user.Username, "username should match")
			})
		})

		t.Run("wrong password fail", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				_, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err)

				_, err = s.Authenticate(t.Context(), "test-user", "wrong-password")

				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			})
		})

		t.Run("unknown user same error", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				_, err := s.Authenticate(t.Context(), "who-is-this", "password123")

				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials,
					"unknown user must not be distinguishable from wrong password")
			})
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("without password keeps hash", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				created, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err)

				err = s.Update(t.Context(), created.ID, "renamed-user", "")
				require.NoError(t, err)

				got, err := s.Get(t.Context(), created.ID)
				require.NoError(t, err)
				require.Equal(t, "renamed-user", got.Username)
				require.Equal(t, created.PasswordHash, got.PasswordHash, "hash must stay the same")

				_, err = s.Authenticate(t.Context(), "renamed-user", "password123")
				require.NoError(t, err, "old password should still work")
			})
		})

		t.Run("with password rotates credentials", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				created, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err)

				err = s.Update(t.Context(), created.ID, "test-user", "newpassword456")
				require.NoError(t, err)

				got, err := s.Get(t.Context(), created.ID)
				require.NoError(t, err)
				require.NotEqual(t, created.PasswordHash, got.PasswordHash, "hash must change")

				_, err = s.Authenticate(t.Context(), "test-user", "password123")
				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "old password should stop working")

				_, err = s.Authenticate(t.Context(), "test-user", "newpassword456")
				require.NoError(t, err, "new password should work")
			})
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("delete then get not found", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				created, err := s.Register(t.Context(), "test-user", "password123")
				require.NoError(t, err)

				require.NoError(t, s.Delete(t.Context(), created.ID))

				_, err = s.Get(t.Context(), created.ID)
				require.ErrorIs(t, err, apperrors.ErrUserNotFound)
			})
		})

		t.Run("delete nonexistent id ok", func(t *testing.T) {
			inTx(t, func(s *UserService) {
				require.NoError(t, s.Delete(t.Context(), 404404))
			})
		})
	})
}
