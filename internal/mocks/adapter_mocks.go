package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/media"
)

// MediaService is a mock of media.Service.
type MediaService struct {
	mock.Mock
}

func (m *MediaService) Upload(ctx context.Context, r io.Reader) (*media.Asset, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Asset), args.Error(1)
}

func (m *MediaService) Destroy(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// Mailer is a mock of mailer.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendAccountConfirmationMessage(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Mailer) SendPasswordResetMessage(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *Mailer) SendTutorialPublishedMessage(ctx context.Context, user *domain.User, tutorial *domain.Tutorial) error {
	args := m.Called(ctx, user, tutorial)
	return args.Error(0)
}
