package mailer

import (
	"context"

	"github.com/ourystd/kaherecode/internal/domain"
)

// Mailer sends transactional emails to users.
type Mailer interface {
	// SendAccountConfirmationMessage emails a newly registered user the
	// link carrying their confirmation token.
	SendAccountConfirmationMessage(ctx context.Context, user *domain.User) error
	// SendPasswordResetMessage emails the user the link carrying their
	// password reset token.
	SendPasswordResetMessage(ctx context.Context, user *domain.User) error
	// SendTutorialPublishedMessage notifies the author that their tutorial
	// went live.
	SendTutorialPublishedMessage(ctx context.Context, user *domain.User, tutorial *domain.Tutorial) error
}
