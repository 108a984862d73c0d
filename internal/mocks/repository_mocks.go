// Package mocks provides testify mocks of the repository and adapter
// interfaces for service and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ourystd/kaherecode/internal/domain"
)

// TutorialRepository is a mock of repository.TutorialRepository.
type TutorialRepository struct {
	mock.Mock
}

func (m *TutorialRepository) Create(ctx context.Context, t *domain.Tutorial, tagLabels []string) error {
	args := m.Called(ctx, t, tagLabels)
	return args.Error(0)
}

func (m *TutorialRepository) Update(ctx context.Context, t *domain.Tutorial, tagLabels []string) error {
	args := m.Called(ctx, t, tagLabels)
	return args.Error(0)
}

func (m *TutorialRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TutorialRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	args := m.Called(ctx, id, publishedAt)
	return args.Error(0)
}

func (m *TutorialRepository) GetByID(ctx context.Context, id string) (*domain.Tutorial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tutorial, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Tutorial, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) FindAllPublishedByTag(ctx context.Context, label string) ([]domain.Tutorial, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) FindRelated(ctx context.Context, t *domain.Tutorial, limit int) ([]domain.Tutorial, error) {
	args := m.Called(ctx, t, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) GetAuthorLastPublished(ctx context.Context, t *domain.Tutorial) (*domain.Tutorial, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) FindVideoTutorials(ctx context.Context) ([]domain.Tutorial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Tutorial, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

// TagRepository is a mock of repository.TagRepository.
type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) GetByLabel(ctx context.Context, label string) (*domain.Tag, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *TagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByConfirmationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
