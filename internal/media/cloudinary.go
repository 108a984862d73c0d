package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/metrics"
)

// CloudinaryService stores tutorial cover images on Cloudinary. Images are
// converted to webp on upload and served with a face-gravity thumbnail
// rendition for listing pages.
type CloudinaryService struct {
	client *cloudinary.Cloudinary
	cloud  string
	folder string
}

// NewCloudinaryService creates a Cloudinary-backed media service.
func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryService, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &CloudinaryService{
		client: client,
		cloud:  cloudName,
		folder: folder,
	}, nil
}

// Upload stores the image and returns its delivery URLs.
func (s *CloudinaryService) Upload(ctx context.Context, r io.Reader) (*Asset, error) {
	start := time.Now()
	resp, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder: s.folder,
		Format: "webp",
	})
	metrics.ObserveMediaUpload(err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	logger.Info("Image uploaded",
		"public_id", resp.PublicID,
		"bytes", resp.Bytes,
		"duration", time.Since(start).String())

	return &Asset{
		PublicID:     resp.PublicID,
		URL:          resp.SecureURL,
		ThumbnailURL: ThumbnailURL(s.cloud, resp.PublicID, resp.Version, resp.Format),
	}, nil
}

// Destroy removes a previously uploaded image by public ID.
func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy image %s: %w", publicID, err)
	}

	logger.Info("Image destroyed", "public_id", publicID)
	return nil
}

// ThumbnailURL builds the delivery URL of the 400px face-cropped rendition
// of an uploaded image.
func ThumbnailURL(cloud, publicID string, version int, format string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/c_thumb,w_400,g_face/v%d/%s.%s",
		cloud, version, publicID, format)
}
