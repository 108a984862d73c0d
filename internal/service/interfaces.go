package service

import (
	"context"
	"io"

	"github.com/ourystd/kaherecode/internal/domain"
)

// TutorialInput carries the fields of the tutorial create and edit forms.
type TutorialInput struct {
	Title       string
	Description string
	Content     string
	VideoLink   *string
	// Tags is the raw comma separated tag string from the form.
	Tags string
	// Picture is the uploaded cover image, nil when the form carried none.
	Picture io.Reader
}

// TutorialDetail is the full read model of a tutorial page.
type TutorialDetail struct {
	Tutorial            *domain.Tutorial
	Author              *domain.User
	Related             []domain.Tutorial
	AuthorLastPublished *domain.Tutorial
}

// TutorialServiceInterface defines the tutorial service contract.
type TutorialServiceInterface interface {
	Create(ctx context.Context, authorID string, in TutorialInput) (*domain.Tutorial, error)
	Update(ctx context.Context, userID, tutorialID string, in TutorialInput) (*domain.Tutorial, error)
	Publish(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error)
	Delete(ctx context.Context, userID, tutorialID string) error
	Preview(ctx context.Context, userID, tutorialID string) (*TutorialDetail, error)

	Home(ctx context.Context) ([]domain.Tutorial, []domain.Tag, error)
	ByTag(ctx context.Context, label string) ([]domain.Tutorial, error)
	Show(ctx context.Context, slug string) (*TutorialDetail, error)
	Videos(ctx context.Context) ([]domain.Tutorial, error)
	GetForEdit(ctx context.Context, userID, tutorialID string) (*domain.Tutorial, error)
}

// RegistrationInput carries the fields of the registration form.
type RegistrationInput struct {
	Email    string
	Username string
	FullName string
	Password string
}

// ProfileInput carries the fields of the profile edit form. Password fields
// are empty when the user is not changing their password.
type ProfileInput struct {
	FullName        string
	Username        string
	CurrentPassword string
	NewPassword     string
}

// ProfileView is the read model of the profile page.
type ProfileView struct {
	User      *domain.User
	Tutorials []domain.Tutorial
}

// UserServiceInterface defines the user service contract.
type UserServiceInterface interface {
	Register(ctx context.Context, in RegistrationInput) (*domain.User, error)
	ConfirmAccount(ctx context.Context, token string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Profile(ctx context.Context, userID string) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
}
