package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/segmentio/ksuid"
)

// S3Store implements Uploader against AWS S3 or any S3-compatible service
// when an endpoint is set.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(accessKeyID, secretAccessKey, region, bucket, endpoint string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, bucket: bucket}, nil
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	key := "resumes/" + id.String() + ext
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}
	return key, nil
}
