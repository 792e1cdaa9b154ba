package services

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/storefront/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageSigner turns a stored image key into a URL a browser can fetch.
type ImageSigner interface {
	URL(ctx context.Context, key string) (string, error)
}

// NewImageSigner returns an S3 presigner when a bucket is configured and a
// static prefix signer otherwise.
func NewImageSigner(ctx context.Context, cfg *sc.Config) (ImageSigner, error) {
	if cfg.S3Bucket == "" {
		return NewPrefixImageSigner(cfg.ImagesBaseURL), nil
	}
	return NewS3ImageSigner(ctx, cfg)
}

// PrefixImageSigner serves images from a static location.
type PrefixImageSigner struct {
	baseURL string
}

func NewPrefixImageSigner(baseURL string) *PrefixImageSigner {
	return &PrefixImageSigner{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *PrefixImageSigner) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}

// S3ImageSigner presigns GET requests against an S3-compatible bucket (MinIO in development).
type S3ImageSigner struct {
	client   *s3.PresignClient
	bucket   string
	validity time.Duration
}

func NewS3ImageSigner(ctx context.Context, cfg *sc.Config) (*S3ImageSigner, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		// MinIO serves buckets as paths, not subdomains
		o.UsePathStyle = true
	})

	return &S3ImageSigner{
		client:   newS3PresignClient(client),
		bucket:   cfg.S3Bucket,
		validity: cfg.ImageURLValidity,
	}, nil
}

func (s *S3ImageSigner) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	bucket := s.bucket
	req, err := presignGetObject(s.client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.validity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
