package media

import (
	"context"
	"io"
)

// Asset describes an uploaded image.
type Asset struct {
	PublicID     string
	URL          string
	ThumbnailURL string
}

// Service uploads and removes tutorial cover images.
type Service interface {
	// Upload stores the image and returns its delivery URLs.
	Upload(ctx context.Context, r io.Reader) (*Asset, error)
	// Destroy removes a previously uploaded image by public ID.
	Destroy(ctx context.Context, publicID string) error
}
