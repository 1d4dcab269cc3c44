package gateway

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxImageSize is the upload cap: 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

// PrecheckImage rejects uploads whose declared type is not an image or
// whose size exceeds MaxImageSize. It runs before any network call.
func PrecheckImage(upload model.ImageUpload) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return model.ErrNotImage
	}
	if upload.Size > MaxImageSize {
		return model.ErrImageTooLarge
	}
	return nil
}

// ImageStore persists an uploaded image and yields a public URL for the
// product record.
type ImageStore interface {
	Store(ctx context.Context, upload model.ImageUpload) (string, error)
}

// s3ImageStore implements ImageStore on an S3 bucket.
type s3ImageStore struct {
	client *s3.Client
	bucket string
	region string
	logger zerolog.Logger
}

// NewS3ImageStore creates an S3-backed image store.
func NewS3ImageStore(ctx context.Context, bucket, region string, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return &s3ImageStore{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

// Store uploads the image under a collision-free key and returns the
// object's public URL.
func (s *s3ImageStore) Store(ctx context.Context, upload model.ImageUpload) (string, error) {
	key := fmt.Sprintf("produtos/%s%s", uuid.New().String(), safeExtension(upload.FileName))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Content),
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload image to S3")
		return "", fmt.Errorf("failed to upload image (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	s.logger.Info().
		Str("key", key).
		Int64("size", upload.Size).
		Msg("image uploaded")

	return url, nil
}

// safeExtension keeps the original file extension when it looks sane and
// drops it otherwise, so arbitrary file names never reach the object key.
func safeExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ""
}
