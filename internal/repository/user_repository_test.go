package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/repository"
)

func TestPostgresUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	userRepo := repository.NewPostgresUserRepository(testDB.Pool)
	ctx := context.Background()

	newUser := func(email, username string) domain.User {
		token := uuid.New().String()
		return domain.User{
			ID:                uuid.New().String(),
			Email:             email,
			Username:          username,
			FullName:          "Awa Diop",
			PasswordHash:      "$2a$10$hash",
			Role:              "user",
			ConfirmationToken: &token,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
	}

	t.Run("create and get", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		user := newUser("awa@example.com", "awadiop")
		require.NoError(t, userRepo.Create(ctx, &user))

		got, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "awa@example.com", got.Email)
		assert.False(t, got.IsConfirmed)

		byEmail, err := userRepo.GetByEmail(ctx, "awa@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		first := newUser("dup@example.com", "first")
		require.NoError(t, userRepo.Create(ctx, &first))

		second := newUser("dup@example.com", "second")
		err := userRepo.Create(ctx, &second)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("duplicate username maps to ErrUsernameTaken", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		first := newUser("one@example.com", "same")
		require.NoError(t, userRepo.Create(ctx, &first))

		second := newUser("two@example.com", "same")
		err := userRepo.Create(ctx, &second)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("get by confirmation token", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		user := newUser("confirm@example.com", "confirmme")
		require.NoError(t, userRepo.Create(ctx, &user))

		got, err := userRepo.GetByConfirmationToken(ctx, *user.ConfirmationToken)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)

		missing, err := userRepo.GetByConfirmationToken(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update clears tokens and flips confirmation", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		user := newUser("flip@example.com", "flipper")
		require.NoError(t, userRepo.Create(ctx, &user))

		user.IsConfirmed = true
		user.ConfirmationToken = nil
		user.FullName = "Awa D."
		user.UpdatedAt = time.Now()
		require.NoError(t, userRepo.Update(ctx, &user))

		got, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsConfirmed)
		assert.Nil(t, got.ConfirmationToken)
		assert.Equal(t, "Awa D.", got.FullName)
	})

	t.Run("reset token roundtrip", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		user := newUser("reset@example.com", "resetme")
		require.NoError(t, userRepo.Create(ctx, &user))

		token := uuid.New().String()
		user.ResetToken = &token
		user.UpdatedAt = time.Now()
		require.NoError(t, userRepo.Update(ctx, &user))

		got, err := userRepo.GetByResetToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("update unknown user returns not found", func(t *testing.T) {
		ghost := newUser("ghost@example.com", "ghost")
		err := userRepo.Update(ctx, &ghost)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
