package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ourystd/kaherecode/internal/domain"
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTutorial validates a Tutorial entity. Drafts are allowed to be
// incomplete; completeness for publication is checked by the publish guard,
// not here.
func (v *Validator) ValidateTutorial(t *domain.Tutorial) error {
	err := validation.ValidateStruct(t,
		validation.Field(&t.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, 255).Error("title_too_long"),
		),
		validation.Field(&t.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
		validation.Field(&t.Description,
			validation.Length(0, 500).Error("description_too_long"),
		),
		validation.Field(&t.VideoLink,
			validation.By(optionalURLRule),
		),
		validation.Field(&t.AuthorID,
			validation.Required.Error("author_required"),
		),
	)
	if err != nil {
		return err
	}

	// Custom rule: published tutorials must carry a publication timestamp
	if t.IsPublished && t.PublishedAt == nil {
		return validation.Errors{
			"published_at": validation.NewError("published_requires_published_at", "published tutorials must have published_at"),
		}
	}

	// Custom rule: drafts cannot carry a publication timestamp
	if !t.IsPublished && t.PublishedAt != nil {
		return validation.Errors{
			"published_at": validation.NewError("draft_cannot_have_published_at", "draft tutorials cannot have published_at"),
		}
	}

	return nil
}

// ValidateRegistration validates a new User account.
func (v *Validator) ValidateRegistration(u *domain.User) error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		validation.Field(&u.Username,
			validation.Required.Error("username_required"),
			validation.Match(usernameRegex).Error("invalid_username_format"),
		),
		validation.Field(&u.FullName,
			validation.Required.Error("full_name_required"),
		),
		validation.Field(&u.Role,
			validation.Required.Error("role_required"),
			validation.In(roleValues()...).Error("invalid_role"),
		),
	)
}

// ValidatePassword enforces the password policy: at least eight characters
// mixing letters and digits.
func (v *Validator) ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password_required"),
		validation.Length(8, 72).Error("password_too_short"),
		validation.Match(letterRegex).Error("password_needs_letter"),
		validation.Match(digitRegex).Error("password_needs_digit"),
	)
}

func optionalURLRule(value interface{}) error {
	var link string
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil
		}
		link = *v
	case string:
		link = v
	default:
		return nil
	}
	if link == "" {
		return nil
	}
	if err := validation.Validate(link, is.URL); err != nil {
		return validation.NewError("invalid_video_link", "video link must be a valid URL")
	}
	return nil
}

func roleValues() []interface{} {
	values := make([]interface{}, len(domain.ValidRoles))
	for i, r := range domain.ValidRoles {
		values[i] = r
	}
	return values
}
