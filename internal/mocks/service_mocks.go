package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/service"
)

// TutorialService is a mock of service.TutorialServiceInterface.
type TutorialService struct {
	mock.Mock
}

func (m *TutorialService) Create(ctx context.Context, authorID string, in service.TutorialInput) (*domain.Tutorial, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialService) Update(ctx context.Context, userID, tutorialID string, in service.TutorialInput) (*domain.Tutorial, error) {
	args := m.Called(ctx, userID, tutorialID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialService) Publish(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error) {
	args := m.Called(ctx, userID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

func (m *TutorialService) Delete(ctx context.Context, userID, tutorialID string) error {
	args := m.Called(ctx, userID, tutorialID)
	return args.Error(0)
}

func (m *TutorialService) Preview(ctx context.Context, userID, tutorialID string) (*service.TutorialDetail, error) {
	args := m.Called(ctx, userID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TutorialDetail), args.Error(1)
}

func (m *TutorialService) Home(ctx context.Context) ([]domain.Tutorial, []domain.Tag, error) {
	args := m.Called(ctx)
	var tutorials []domain.Tutorial
	if args.Get(0) != nil {
		tutorials = args.Get(0).([]domain.Tutorial)
	}
	var tags []domain.Tag
	if args.Get(1) != nil {
		tags = args.Get(1).([]domain.Tag)
	}
	return tutorials, tags, args.Error(2)
}

func (m *TutorialService) ByTag(ctx context.Context, label string) ([]domain.Tutorial, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialService) Show(ctx context.Context, slug string) (*service.TutorialDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TutorialDetail), args.Error(1)
}

func (m *TutorialService) Videos(ctx context.Context) ([]domain.Tutorial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tutorial), args.Error(1)
}

func (m *TutorialService) GetForEdit(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error) {
	args := m.Called(ctx, userID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutorial), args.Error(1)
}

// UserService is a mock of service.UserServiceInterface.
type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, in service.RegistrationInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) ConfirmAccount(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.String(0), user, args.Error(2)
}

func (m *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserService) ResetPassword(ctx context.Context, token, password string) error {
	args := m.Called(ctx, token, password)
	return args.Error(0)
}

func (m *UserService) Profile(ctx context.Context, userID string) (*service.ProfileView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileView), args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
