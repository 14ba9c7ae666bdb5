package services

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/config"
)

// Storage buckets for uploaded images, by purpose.
const (
	BucketProjectImages = "project-images"
	BucketContentImages = "content-images"
)

// ImageStore uploads image bytes to object storage and hands back a public
// URL. Nothing else in the system ever touches the raw bytes; the relational
// model stores only the URL string.
type ImageStore struct {
	client        *s3.Client
	region        string
	publicBaseURL string // optional override, e.g. a CDN in front of the buckets
}

func NewImageStore(ctx context.Context, cfg map[string]string) (*ImageStore, error) {
	region := config.GetString(cfg, "AWS_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &ImageStore{
		client:        s3.NewFromConfig(awsCfg),
		region:        region,
		publicBaseURL: config.GetString(cfg, "IMAGE_PUBLIC_BASE_URL", ""),
	}, nil
}

// Upload stores the file under a fresh timestamped key and returns its public
// URL.
func (s *ImageStore) Upload(ctx context.Context, bucket, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("upload image to %s: %w", bucket, err)
	}

	url := s.publicURL(bucket, key)
	log.Info().Str("bucket", bucket).Str("key", key).Msg("Uploaded image")
	return url, nil
}

func (s *ImageStore) publicURL(bucket, key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.publicBaseURL, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, key)
}

// objectKey builds a collision-resistant key, keeping the original extension.
func objectKey(filename string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randSuffix(7), path.Ext(filename))
}

func randSuffix(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
