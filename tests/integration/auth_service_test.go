package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/internal/auth"
)

func TestAuthService_Integration(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("RegisterAndLogin", func(t *testing.T) {
		err := env.authService.Register(ctx, "alice", "pw")
		require.NoError(t, err)

		identity, err := env.authService.Login(ctx, "alice", "pw")
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "alice", identity.Username)
		assert.NotZero(t, identity.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		identity, err := env.authService.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, identity)
	})

	t.Run("UnknownUserLooksLikeWrongPassword", func(t *testing.T) {
		_, err := env.authService.Login(ctx, "nobody", "pw")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		before, err := env.userRepo.Count(ctx)
		require.NoError(t, err)

		err = env.authService.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, db.ErrDuplicateUsername)

		after, err := env.userRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("EmptyFieldsRejected", func(t *testing.T) {
		assert.ErrorIs(t, env.authService.Register(ctx, "", "pw"), auth.ErrValidation)
		assert.ErrorIs(t, env.authService.Register(ctx, "bob", ""), auth.ErrValidation)
	})

	t.Run("PasswordStoredHashed", func(t *testing.T) {
		require.NoError(t, env.authService.Register(ctx, "carol", "secret"))

		user, err := env.userRepo.FindByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("UsernameIsCaseSensitive", func(t *testing.T) {
		_, err := env.authService.Login(ctx, "Alice", "pw")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
