package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tiaraw/portfolio-backend/config"
)

// S3Store stores objects in S3 or any S3-compatible endpoint (Supabase
// storage, MinIO). Buckets are expected to exist and to serve objects
// publicly.
type S3Store struct {
	client        *s3.Client
	region        string
	publicBaseURL string
}

// NewS3Store builds an S3-backed store from the environment:
//
//	S3_REGION           region (default us-east-1)
//	S3_ENDPOINT         custom endpoint for S3-compatible providers (optional)
//	S3_ACCESS_KEY_ID    static credentials (optional; falls back to the
//	S3_SECRET_ACCESS_KEY  default AWS credential chain)
//	S3_PUBLIC_BASE_URL  base URL public object links are built from (optional)
func NewS3Store(ctx context.Context, cfg map[string]string) (*S3Store, error) {
	region := config.GetString(cfg, "S3_REGION", "us-east-1")
	endpoint := config.GetString(cfg, "S3_ENDPOINT", "")
	accessKey := config.GetString(cfg, "S3_ACCESS_KEY_ID", "")
	secretKey := config.GetString(cfg, "S3_SECRET_ACCESS_KEY", "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// Compatible providers generally want path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		region:        region,
		publicBaseURL: strings.TrimSuffix(config.GetString(cfg, "S3_PUBLIC_BASE_URL", ""), "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *S3Store) PublicURL(bucket, key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, key)
}
