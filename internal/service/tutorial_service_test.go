package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/media"
	"github.com/ourystd/kaherecode/internal/mocks"
	"github.com/ourystd/kaherecode/internal/service"
	"github.com/ourystd/kaherecode/internal/validator"
)

type tutorialServiceMocks struct {
	tutorialRepo *mocks.TutorialRepository
	tagRepo      *mocks.TagRepository
	userRepo     *mocks.UserRepository
	media        *mocks.MediaService
	mailer       *mocks.Mailer
}

func newTutorialService(t *testing.T) (*service.TutorialService, *tutorialServiceMocks) {
	t.Helper()
	m := &tutorialServiceMocks{
		tutorialRepo: &mocks.TutorialRepository{},
		tagRepo:      &mocks.TagRepository{},
		userRepo:     &mocks.UserRepository{},
		media:        &mocks.MediaService{},
		mailer:       &mocks.Mailer{},
	}
	svc := service.NewTutorialService(m.tutorialRepo, m.tagRepo, m.userRepo, m.media, m.mailer, validator.NewValidator(), 10, 1)
	t.Cleanup(svc.Close)
	return svc, m
}

func completeTutorial(authorID string) *domain.Tutorial {
	return &domain.Tutorial{
		ID:          uuid.New().String(),
		Slug:        "complete-tutorial-abcd1234",
		Title:       "Complete tutorial",
		Description: "A finished draft",
		Content:     "<p>Body</p>",
		PictureURL:  "https://res.cloudinary.com/kaherecode/image/upload/v1/pic.webp",
		AuthorID:    authorID,
		Tags:        []domain.Tag{{ID: uuid.New().String(), Label: "go"}},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestTutorialService_Create(t *testing.T) {
	t.Run("creates draft with normalized tags and derived slug", func(t *testing.T) {
		svc, m := newTutorialService(t)
		authorID := uuid.New().String()

		var created *domain.Tutorial
		m.tutorialRepo.On("Create", mock.Anything, mock.Anything, []string{"go", "docker"}).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Tutorial)
			}).
			Return(nil)

		got, err := svc.Create(context.Background(), authorID, service.TutorialInput{
			Title:       "Déployer avec Docker",
			Description: "Un guide",
			Tags:        "Go, docker , GO",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, got, created)
		assert.True(t, strings.HasPrefix(got.Slug, "deployer-avec-docker-"), "slug was %q", got.Slug)
		assert.Equal(t, authorID, got.AuthorID)
		assert.False(t, got.IsPublished)
		m.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("uploads picture when the form carries one", func(t *testing.T) {
		svc, m := newTutorialService(t)
		authorID := uuid.New().String()

		asset := &media.Asset{
			PublicID:     "kaherecode/tutorials/pic",
			URL:          "https://res.cloudinary.com/kaherecode/image/upload/v1/pic.webp",
			ThumbnailURL: "https://res.cloudinary.com/kaherecode/image/upload/c_thumb,w_400,g_face/v1/pic.webp",
		}
		m.media.On("Upload", mock.Anything, mock.Anything).Return(asset, nil)
		m.tutorialRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Create(context.Background(), authorID, service.TutorialInput{
			Title:   "With picture",
			Tags:    "go",
			Picture: strings.NewReader("fake image bytes"),
		})
		require.NoError(t, err)
		assert.Equal(t, asset.URL, got.PictureURL)
		assert.Equal(t, asset.PublicID, got.PicturePublicID)
		assert.Equal(t, asset.ThumbnailURL, got.ThumbnailURL)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		svc, m := newTutorialService(t)

		_, err := svc.Create(context.Background(), uuid.New().String(), service.TutorialInput{})
		assert.Error(t, err)
		m.tutorialRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTutorialService_Update(t *testing.T) {
	t.Run("author updates own tutorial", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.tutorialRepo.On("Update", mock.Anything, tut, []string{"docker"}).Return(nil)

		got, err := svc.Update(context.Background(), author.ID, tut.ID, service.TutorialInput{
			Title:       "Renamed",
			Description: tut.Description,
			Content:     tut.Content,
			Tags:        "Docker",
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, tut.Slug, got.Slug, "slug must not change on edit")
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		svc, m := newTutorialService(t)
		tut := completeTutorial(uuid.New().String())
		stranger := &domain.User{ID: uuid.New().String(), Role: "user"}

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, stranger.ID).Return(stranger, nil)

		_, err := svc.Update(context.Background(), stranger.ID, tut.ID, service.TutorialInput{Title: "Hijacked"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		m.tutorialRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("editor can edit any tutorial", func(t *testing.T) {
		svc, m := newTutorialService(t)
		tut := completeTutorial(uuid.New().String())
		editor := &domain.User{ID: uuid.New().String(), Role: "editor"}

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, editor.ID).Return(editor, nil)
		m.tutorialRepo.On("Update", mock.Anything, tut, mock.Anything).Return(nil)

		_, err := svc.Update(context.Background(), editor.ID, tut.ID, service.TutorialInput{
			Title: "Edited by staff",
			Tags:  "go",
		})
		assert.NoError(t, err)
	})

	t.Run("replacing the picture destroys the old one", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		tut.PicturePublicID = "kaherecode/tutorials/old"

		asset := &media.Asset{PublicID: "kaherecode/tutorials/new", URL: "https://example.com/new.webp"}
		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.media.On("Upload", mock.Anything, mock.Anything).Return(asset, nil)
		m.tutorialRepo.On("Update", mock.Anything, tut, mock.Anything).Return(nil)
		m.media.On("Destroy", mock.Anything, "kaherecode/tutorials/old").Return(nil)

		_, err := svc.Update(context.Background(), author.ID, tut.ID, service.TutorialInput{
			Title:   tut.Title,
			Tags:    "go",
			Picture: strings.NewReader("new image"),
		})
		require.NoError(t, err)
		m.media.AssertCalled(t, "Destroy", mock.Anything, "kaherecode/tutorials/old")
	})
}

func TestTutorialService_Publish(t *testing.T) {
	t.Run("publishes complete tutorial and notifies the author", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Email: "author@example.com", Role: "user"}
		tut := completeTutorial(author.ID)

		notified := make(chan struct{})
		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.tutorialRepo.On("MarkPublished", mock.Anything, tut.ID, mock.AnythingOfType("time.Time")).Return(nil)
		m.mailer.On("SendTutorialPublishedMessage", mock.Anything, author, mock.Anything).
			Run(func(mock.Arguments) { close(notified) }).
			Return(nil)

		got, err := svc.Publish(context.Background(), author.ID, tut.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPublished)
		require.NotNil(t, got.PublishedAt)

		select {
		case <-notified:
		case <-time.After(2 * time.Second):
			t.Fatal("publication email was never sent")
		}
	})

	t.Run("rejects incomplete tutorial naming the missing fields", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		tut.Content = ""
		tut.Tags = nil

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)

		_, err := svc.Publish(context.Background(), author.ID, tut.ID)
		require.Error(t, err)

		var precondition *domain.PublishPreconditionError
		require.ErrorAs(t, err, &precondition)
		assert.Contains(t, precondition.Missing, "content")
		assert.Contains(t, precondition.Missing, "tags")
		m.tutorialRepo.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publishing twice is a no-op", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		publishedAt := time.Now().Add(-time.Hour)
		tut.IsPublished = true
		tut.PublishedAt = &publishedAt

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)

		got, err := svc.Publish(context.Background(), author.ID, tut.ID)
		require.NoError(t, err)
		assert.Equal(t, &publishedAt, got.PublishedAt)
		m.tutorialRepo.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stranger cannot publish", func(t *testing.T) {
		svc, m := newTutorialService(t)
		tut := completeTutorial(uuid.New().String())
		stranger := &domain.User{ID: uuid.New().String(), Role: "user"}

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, stranger.ID).Return(stranger, nil)

		_, err := svc.Publish(context.Background(), stranger.ID, tut.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTutorialService_Delete(t *testing.T) {
	t.Run("deletes draft and its picture", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		tut.PicturePublicID = "kaherecode/tutorials/pic"

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.tutorialRepo.On("Delete", mock.Anything, tut.ID).Return(nil)
		m.media.On("Destroy", mock.Anything, tut.PicturePublicID).Return(nil)

		err := svc.Delete(context.Background(), author.ID, tut.ID)
		require.NoError(t, err)
		m.media.AssertCalled(t, "Destroy", mock.Anything, tut.PicturePublicID)
	})

	t.Run("never deletes a published tutorial", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		publishedAt := time.Now()
		tut.IsPublished = true
		tut.PublishedAt = &publishedAt

		m.tutorialRepo.On("GetByID", mock.Anything, tut.ID).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)

		err := svc.Delete(context.Background(), author.ID, tut.ID)
		assert.ErrorIs(t, err, domain.ErrPublishedTutorialDelete)
		m.tutorialRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown tutorial yields not found", func(t *testing.T) {
		svc, m := newTutorialService(t)
		m.tutorialRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

		err := svc.Delete(context.Background(), uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTutorialService_Queries(t *testing.T) {
	t.Run("home lists latest tutorials and all tags", func(t *testing.T) {
		svc, m := newTutorialService(t)
		tutorials := []domain.Tutorial{*completeTutorial(uuid.New().String())}
		tags := []domain.Tag{{ID: uuid.New().String(), Label: "go"}}

		m.tutorialRepo.On("ListPublished", mock.Anything, 10, 0).Return(tutorials, nil)
		m.tagRepo.On("ListAll", mock.Anything).Return(tags, nil)

		gotTutorials, gotTags, err := svc.Home(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tutorials, gotTutorials)
		assert.Equal(t, tags, gotTags)
	})

	t.Run("unknown tag label yields not found", func(t *testing.T) {
		svc, m := newTutorialService(t)
		m.tagRepo.On("GetByLabel", mock.Anything, "nope").Return(nil, nil)

		_, err := svc.ByTag(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("show hides drafts", func(t *testing.T) {
		svc, m := newTutorialService(t)
		draft := completeTutorial(uuid.New().String())

		m.tutorialRepo.On("GetBySlug", mock.Anything, draft.Slug).Return(draft, nil)

		_, err := svc.Show(context.Background(), draft.Slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("show builds the full page model", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		tut := completeTutorial(author.ID)
		publishedAt := time.Now()
		tut.IsPublished = true
		tut.PublishedAt = &publishedAt
		related := []domain.Tutorial{*completeTutorial(uuid.New().String())}
		last := completeTutorial(author.ID)

		m.tutorialRepo.On("GetBySlug", mock.Anything, tut.Slug).Return(tut, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.tutorialRepo.On("FindRelated", mock.Anything, tut, service.RelatedTutorialsLimit).Return(related, nil)
		m.tutorialRepo.On("GetAuthorLastPublished", mock.Anything, tut).Return(last, nil)

		detail, err := svc.Show(context.Background(), tut.Slug)
		require.NoError(t, err)
		assert.Equal(t, tut, detail.Tutorial)
		assert.Equal(t, author, detail.Author)
		assert.Equal(t, related, detail.Related)
		assert.Equal(t, last, detail.AuthorLastPublished)
	})

	t.Run("preview shows drafts to the author", func(t *testing.T) {
		svc, m := newTutorialService(t)
		author := &domain.User{ID: uuid.New().String(), Role: "user"}
		draft := completeTutorial(author.ID)

		m.tutorialRepo.On("GetByID", mock.Anything, draft.ID).Return(draft, nil)
		m.userRepo.On("GetByID", mock.Anything, author.ID).Return(author, nil)
		m.tutorialRepo.On("FindRelated", mock.Anything, draft, service.RelatedTutorialsLimit).Return([]domain.Tutorial{}, nil)
		m.tutorialRepo.On("GetAuthorLastPublished", mock.Anything, draft).Return(nil, nil)

		detail, err := svc.Preview(context.Background(), author.ID, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft, detail.Tutorial)
	})
}
