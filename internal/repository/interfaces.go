package repository

import (
	"context"
	"time"

	"github.com/ourystd/kaherecode/internal/domain"
)

// TutorialRepository defines methods for tutorial data access.
type TutorialRepository interface {
	// Create persists a new tutorial and attaches the given tag labels,
	// creating missing tags lazily, within one transaction.
	Create(ctx context.Context, t *domain.Tutorial, tagLabels []string) error
	// Update persists tutorial field changes and replaces its tag set with
	// the given labels within one transaction.
	Update(ctx context.Context, t *domain.Tutorial, tagLabels []string) error
	// Delete removes a tutorial. Returns domain.ErrNotFound when it does
	// not exist.
	Delete(ctx context.Context, id string) error
	// MarkPublished flips the tutorial to published and stamps publishedAt.
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error

	GetByID(ctx context.Context, id string) (*domain.Tutorial, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tutorial, error)
	// ListPublished returns published tutorials, most recently published
	// first.
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Tutorial, error)
	// FindAllPublishedByTag returns published tutorials carrying the tag,
	// most recently published first, unbounded.
	FindAllPublishedByTag(ctx context.Context, label string) ([]domain.Tutorial, error)
	// FindRelated returns other published tutorials sharing at least one
	// tag with t. limit <= 0 means unbounded.
	FindRelated(ctx context.Context, t *domain.Tutorial, limit int) ([]domain.Tutorial, error)
	// GetAuthorLastPublished returns the most recently published other
	// tutorial by t's author, or nil when there is none.
	GetAuthorLastPublished(ctx context.Context, t *domain.Tutorial) (*domain.Tutorial, error)
	// FindVideoTutorials returns published tutorials carrying a video link.
	FindVideoTutorials(ctx context.Context) ([]domain.Tutorial, error)
	// FindByAuthor returns all of an author's tutorials, drafts included,
	// newest first.
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Tutorial, error)
}

// TagRepository defines methods for tag data access.
type TagRepository interface {
	// GetByLabel returns the tag with the given label, or nil when unknown.
	GetByLabel(ctx context.Context, label string) (*domain.Tag, error)
	ListAll(ctx context.Context) ([]domain.Tag, error)
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken or
	// domain.ErrUsernameTaken on unique conflicts.
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByConfirmationToken(ctx context.Context, token string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
}
