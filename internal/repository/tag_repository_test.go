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

func TestPostgresTagRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	userRepo := repository.NewPostgresUserRepository(testDB.Pool)
	tutorialRepo := repository.NewPostgresTutorialRepository(testDB.Pool)
	tagRepo := repository.NewPostgresTagRepository(testDB.Pool)
	ctx := context.Background()

	seedTags := func(t *testing.T, labels ...string) {
		t.Helper()
		user := domain.User{
			ID:           uuid.New().String(),
			Email:        uuid.New().String()[:8] + "@example.com",
			Username:     "seed" + uuid.New().String()[:8],
			FullName:     "Seed User",
			PasswordHash: "x",
			Role:         "user",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		require.NoError(t, userRepo.Create(ctx, &user))
		id := uuid.New().String()
		tut := domain.Tutorial{
			ID:        id,
			Slug:      "seed-" + id[:8],
			Title:     "Seeded",
			AuthorID:  user.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, tutorialRepo.Create(ctx, &tut, labels))
	}

	t.Run("get by label", func(t *testing.T) {
		testDB.TruncateTables(t, "tutorial_tags", "tutorials", "tags", "users")
		seedTags(t, "go", "docker")

		got, err := tagRepo.GetByLabel(ctx, "go")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "go", got.Label)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("get by unknown label returns nil", func(t *testing.T) {
		got, err := tagRepo.GetByLabel(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list all orders by label", func(t *testing.T) {
		testDB.TruncateTables(t, "tutorial_tags", "tutorials", "tags", "users")
		seedTags(t, "zig", "ansible", "go")

		got, err := tagRepo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "ansible", got[0].Label)
		assert.Equal(t, "go", got[1].Label)
		assert.Equal(t, "zig", got[2].Label)
	})
}
