package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ourystd/kaherecode/internal/auth"
	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/mailer"
	"github.com/ourystd/kaherecode/internal/repository"
	"github.com/ourystd/kaherecode/internal/validator"
)

// UserService implements registration, account confirmation, login,
// password reset and profile management.
type UserService struct {
	userRepo     repository.UserRepository
	tutorialRepo repository.TutorialRepository
	mailer       mailer.Mailer
	tokens       *auth.TokenManager
	validator    *validator.Validator
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	tutorialRepo repository.TutorialRepository,
	m mailer.Mailer,
	tokens *auth.TokenManager,
	v *validator.Validator,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		tutorialRepo: tutorialRepo,
		mailer:       m,
		tokens:       tokens,
		validator:    v,
	}
}

// Register creates an unconfirmed account and emails its confirmation
// link. Email and username conflicts surface as domain.ErrEmailTaken and
// domain.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, in RegistrationInput) (*domain.User, error) {
	now := time.Now()
	token := uuid.New().String()
	user := &domain.User{
		ID:                uuid.New().String(),
		Email:             in.Email,
		Username:          in.Username,
		FullName:          in.FullName,
		Role:              "user",
		ConfirmationToken: &token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.validator.ValidateRegistration(user); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendAccountConfirmationMessage(ctx, user); err != nil {
		// The account exists; the user can ask for the email again.
		logger.WithUserID(user.ID).Error("Failed to send confirmation email", "error", err)
	}

	logger.WithUserID(user.ID).Info("User registered", "username", user.Username)

	return user, nil
}

// ConfirmAccount flips an account to confirmed from its confirmation
// token. Unknown tokens yield domain.ErrInvalidToken.
func (s *UserService) ConfirmAccount(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.GetByConfirmationToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get user by confirmation token: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}

	user.IsConfirmed = true
	user.ConfirmationToken = nil
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("confirm account: %w", err)
	}

	logger.WithUserID(user.ID).Info("Account confirmed")

	return user, nil
}

// Login checks the credentials and returns a signed session token. Wrong
// email or password yields domain.ErrInvalidCredentials without telling
// which of the two was wrong; unconfirmed accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsConfirmed {
		return "", nil, domain.ErrAccountNotConfirmed
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	logger.WithUserID(user.ID).Info("User logged in")

	return token, user, nil
}

// RequestPasswordReset stores a fresh reset token and emails its link.
// Unknown emails yield domain.ErrNotFound.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	token := uuid.New().String()
	user.ResetToken = &token
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetMessage(ctx, user); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	logger.WithUserID(user.ID).Info("Password reset requested")

	return nil
}

// ResetPassword sets a new password from a reset token and consumes the
// token. Unknown tokens yield domain.ErrInvalidToken.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("get user by reset token: %w", err)
	}
	if user == nil {
		return domain.ErrInvalidToken
	}

	if err := s.validator.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ResetToken = nil
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	logger.WithUserID(user.ID).Info("Password reset")

	return nil
}

// Profile returns the user together with all their tutorials, drafts
// included.
func (s *UserService) Profile(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	tutorials, err := s.tutorialRepo.FindByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find tutorials by author: %w", err)
	}

	return &ProfileView{User: user, Tutorials: tutorials}, nil
}

// UpdateProfile applies the profile edit form. Changing the password
// requires the current one; a mismatch yields domain.ErrWrongPassword.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	user.FullName = in.FullName
	user.Username = in.Username

	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, domain.ErrWrongPassword
		}
		if err := s.validator.ValidatePassword(in.NewPassword); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.validator.ValidateRegistration(user); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.WithUserID(user.ID).Info("Profile updated")

	return user, nil
}
