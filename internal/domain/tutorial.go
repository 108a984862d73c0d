package domain

import "time"

// Tutorial represents a tutorial article with a draft/published lifecycle.
type Tutorial struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Content         string     `json:"content,omitempty"`
	VideoLink       *string    `json:"video_link,omitempty"`
	PictureURL      string     `json:"picture_url,omitempty"`
	PicturePublicID string     `json:"-"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	AuthorID        string     `json:"author_id"`
	Tags            []Tag      `json:"tags,omitempty"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasTag reports whether the tutorial carries a tag with the given label.
func (t *Tutorial) HasTag(label string) bool {
	for _, tag := range t.Tags {
		if tag.Label == label {
			return true
		}
	}
	return false
}

// MissingPublishFields returns the names of the fields that must be filled
// before the tutorial can be published. An empty result means the tutorial
// is complete enough to publish.
func (t *Tutorial) MissingPublishFields() []string {
	var missing []string
	if t.Title == "" {
		missing = append(missing, "title")
	}
	if t.Description == "" {
		missing = append(missing, "description")
	}
	if t.Content == "" {
		missing = append(missing, "content")
	}
	if t.PictureURL == "" {
		missing = append(missing, "picture")
	}
	if len(t.Tags) == 0 {
		missing = append(missing, "tags")
	}
	return missing
}
