package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"chirpnet/internal/config"
	"chirpnet/internal/model"
)

// Uploader stores images and destroys them by key. Satisfied by
// MediaService; mocked in tests.
type Uploader interface {
	Upload(ctx context.Context, data string) (*model.UploadResult, error)
	Destroy(ctx context.Context, key string) error
}

// MediaService handles image uploads to Cloudflare R2. Clients send
// images inline as base64 data URIs; the service normalizes them to
// JPEG before storing.
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewMediaService constructs an S3-compatible client for Cloudflare R2.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" || cfg.R2PublicURL == "" {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

// Upload decodes a base64 data URI, enforces the size limit, downscales
// to MaxImageWidth, and stores the result as JPEG under a random key.
func (s *MediaService) Upload(ctx context.Context, data string) (*model.UploadResult, error) {
	raw, err := decodeImageData(data)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := normalizeToJPEG(raw, model.MaxImageWidth, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s%s", model.ImageFolder, uuid.NewString(), model.ImageExt)

	if err := s.putObject(ctx, key, jpegBytes, model.ContentTypeJPEG, model.ImageCacheControl); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.publicURL, key)
	return &model.UploadResult{URL: url, Key: key}, nil
}

// Destroy removes a stored image by key. An empty key is a no-op so
// callers can pass it unconditionally.
func (s *MediaService) Destroy(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from r2: %w", err)
	}
	return nil
}

// decodeImageData strips an optional "data:image/...;base64," prefix
// and decodes the payload with a size check.
func decodeImageData(data string) ([]byte, error) {
	if data == "" {
		return nil, model.ErrInvalidImageData
	}
	if idx := strings.Index(data, ";base64,"); idx != -1 {
		data = data[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, model.ErrInvalidImageData
	}
	if len(raw) > model.MaxImageSizeBytes {
		return nil, model.ErrImageTooLarge
	}
	return raw, nil
}

// normalizeToJPEG downscales wide images and encodes as JPEG. Images
// already narrower than maxWidth keep their dimensions.
func normalizeToJPEG(data []byte, maxWidth, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ErrInvalidImageData
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// putObject uploads bytes to R2 with metadata.
func (s *MediaService) putObject(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to r2: %w", err)
	}
	return nil
}
