// Package remote copies finished archives to S3-compatible object storage.
// It is optional: with no bucket configured the app never builds an
// Uploader.
package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores a local archive remotely and returns the object location.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Settings describe the target bucket. Endpoint is set for MinIO and other
// S3-compatible servers and switches the client to path-style addressing.
type Settings struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

type S3Uploader struct {
	client putObjectAPI
	bucket string
	now    func() time.Time
}

// NewS3Uploader builds a client from s. Static credentials are used when an
// access key is given, otherwise the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, s Settings) (*S3Uploader, error) {
	if s.Bucket == "" {
		return nil, fmt.Errorf("s3 uploader: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(s.Region)}
	if s.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 uploader: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Uploader(client, s.Bucket), nil
}

func newS3Uploader(client putObjectAPI, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, now: time.Now}
}

// ObjectKey returns archives/{yyyy}/{m}/{d}/{uuid}/{basename}.
func (u *S3Uploader) ObjectKey(path string) string {
	d := u.now()
	return fmt.Sprintf("archives/%d/%d/%d/%v/%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Base(path))
}

func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	defer f.Close()

	key := u.ObjectKey(path)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
