package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps images in an S3-compatible bucket. A custom endpoint
// supports R2 and MinIO style providers.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// BaseURL is the public prefix returned to clients, e.g. a CDN
	// domain. Empty means files are proxied through the API.
	BaseURL string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("images/" + name),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to bucket: %w", err)
	}
	if s.baseURL != "" {
		return s.baseURL + "/images/" + name, nil
	}
	return "/uploads/images/" + name, nil
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !validName(name) {
		return nil, "", fmt.Errorf("invalid file name %q", name)
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("images/" + name),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch from bucket: %w", err)
	}
	contentType := contentTypeForName(name)
	if out.ContentType != nil && *out.ContentType != "" {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}
