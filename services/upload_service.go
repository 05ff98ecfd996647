package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

// MaxUploadBytes bounds accepted image uploads (10 MB).
const MaxUploadBytes = 10 << 20

// UploadResult is the stored image reference handed back to photo-required
// forms.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadService relays a single image file to Cloudinary under a configured
// folder.
type UploadService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewUploadService(cloudName, apiKey, apiSecret, folder string) (*UploadService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &UploadService{cld: cld, folder: folder}, nil
}

// Upload stores the file and returns its public URL and ID.
func (s *UploadService) Upload(ctx context.Context, file io.Reader) (UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloud upload failed: %w", err)
	}
	return UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}
