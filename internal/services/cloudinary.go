package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService hosts moment images on Cloudinary.
type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld:    cld,
		folder: folder,
	}, nil
}

// IsDataURI reports whether image is an inline data URI worth offloading.
func IsDataURI(image string) bool {
	return strings.HasPrefix(image, "data:")
}

// UploadDataURI uploads an inline "data:image/...;base64," image and returns its hosted URL.
func (s *CloudinaryService) UploadDataURI(ctx context.Context, dataURI string) (string, error) {
	if !IsDataURI(dataURI) {
		return "", fmt.Errorf("not a data URI")
	}
	return s.upload(ctx, dataURI)
}

// UploadFile uploads a multipart form file and returns its hosted URL.
func (s *CloudinaryService) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.upload(ctx, file)
}

func (s *CloudinaryService) upload(ctx context.Context, file interface{}) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
