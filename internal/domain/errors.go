package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor lacks the edit capability
	// on the targeted tutorial.
	ErrForbidden = errors.New("forbidden")
	// ErrPublishedTutorialDelete is returned when deletion of a published
	// tutorial is attempted. There is no published-to-draft transition;
	// archiving would be the escape hatch, and it is not implemented.
	ErrPublishedTutorialDelete = errors.New("a published tutorial cannot be deleted, although it may be archived")

	// ErrEmailTaken and ErrUsernameTaken signal registration conflicts.
	ErrEmailTaken    = errors.New("an account with this email already exists")
	ErrUsernameTaken = errors.New("this username is already taken")

	// ErrInvalidCredentials covers both unknown accounts and bad passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotConfirmed is returned on login before email confirmation.
	ErrAccountNotConfirmed = errors.New("account email has not been confirmed")
	// ErrInvalidToken is returned for unknown confirmation or reset tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWrongPassword is returned when the current password check on a
	// profile update fails.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrMediaUpload is returned when the media provider refuses or fails
	// an image upload.
	ErrMediaUpload = errors.New("image upload failed")
)

// PublishPreconditionError is returned when a draft-to-published transition
// is refused because required fields are missing. It aggregates every
// missing field so the caller gets a single actionable message.
type PublishPreconditionError struct {
	Missing []string
}

func (e *PublishPreconditionError) Error() string {
	return fmt.Sprintf(
		"cannot publish the tutorial, the following fields must be filled: %s",
		strings.Join(e.Missing, ", "),
	)
}

// IsPublishPrecondition reports whether err is a PublishPreconditionError
// and returns it when so.
func IsPublishPrecondition(err error) (*PublishPreconditionError, bool) {
	var pe *PublishPreconditionError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
