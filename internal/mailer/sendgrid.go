package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/metrics"
)

// SendGridMailer sends transactional emails through the SendGrid v3 API.
type SendGridMailer struct {
	client  *sendgrid.Client
	from    *mail.Email
	baseURL string
}

// NewSendGridMailer creates a SendGrid-backed mailer. baseURL is the public
// site URL used to build links embedded in messages.
func NewSendGridMailer(apiKey, fromEmail, fromName, baseURL string) *SendGridMailer {
	return &SendGridMailer{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(fromName, fromEmail),
		baseURL: baseURL,
	}
}

// SendAccountConfirmationMessage emails a newly registered user the link
// carrying their confirmation token.
func (m *SendGridMailer) SendAccountConfirmationMessage(ctx context.Context, user *domain.User) error {
	if user.ConfirmationToken == nil {
		return fmt.Errorf("user %s has no confirmation token", user.ID)
	}

	link := fmt.Sprintf("%s/confirm/%s", m.baseURL, *user.ConfirmationToken)
	html := fmt.Sprintf(
		`<p>Bonjour %s,</p>
<p>Bienvenue sur Kaherecode ! Cliquez sur le lien ci-dessous pour confirmer votre compte.</p>
<p><a href="%s">Confirmer mon compte</a></p>`,
		user.FullName, link)
	plain := fmt.Sprintf("Bonjour %s, confirmez votre compte Kaherecode : %s", user.FullName, link)

	return m.send(ctx, "account_confirmation", user, "Confirmez votre compte Kaherecode", plain, html)
}

// SendPasswordResetMessage emails the user the link carrying their password
// reset token.
func (m *SendGridMailer) SendPasswordResetMessage(ctx context.Context, user *domain.User) error {
	if user.ResetToken == nil {
		return fmt.Errorf("user %s has no reset token", user.ID)
	}

	link := fmt.Sprintf("%s/password-reset?token=%s", m.baseURL, *user.ResetToken)
	html := fmt.Sprintf(
		`<p>Bonjour %s,</p>
<p>Vous avez demandé à réinitialiser votre mot de passe. Cliquez sur le lien ci-dessous pour continuer.</p>
<p><a href="%s">Réinitialiser mon mot de passe</a></p>
<p>Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.</p>`,
		user.FullName, link)
	plain := fmt.Sprintf("Bonjour %s, réinitialisez votre mot de passe Kaherecode : %s", user.FullName, link)

	return m.send(ctx, "password_reset", user, "Réinitialisation de votre mot de passe", plain, html)
}

// SendTutorialPublishedMessage notifies the author that their tutorial went
// live.
func (m *SendGridMailer) SendTutorialPublishedMessage(ctx context.Context, user *domain.User, tutorial *domain.Tutorial) error {
	link := fmt.Sprintf("%s/tutorial/%s", m.baseURL, tutorial.Slug)
	html := fmt.Sprintf(
		`<p>Bonjour %s,</p>
<p>Votre tutoriel <strong>%s</strong> est en ligne !</p>
<p><a href="%s">Voir le tutoriel</a></p>`,
		user.FullName, tutorial.Title, link)
	plain := fmt.Sprintf("Bonjour %s, votre tutoriel %q est en ligne : %s", user.FullName, tutorial.Title, link)

	return m.send(ctx, "tutorial_published", user, fmt.Sprintf("%s est en ligne !", tutorial.Title), plain, html)
}

func (m *SendGridMailer) send(ctx context.Context, kind string, user *domain.User, subject, plain, html string) error {
	to := mail.NewEmail(user.FullName, user.Email)
	message := mail.NewSingleEmail(m.from, subject, to, plain, html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	metrics.ObserveEmail(kind, err)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	logger.Info("Email sent",
		"message", kind,
		"user_id", user.ID,
		"status", resp.StatusCode)
	return nil
}
