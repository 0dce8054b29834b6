// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// avatarKeyPrefix namespaces avatars inside the bucket.
const avatarKeyPrefix = "avatars/"

// ObjectPutter is the subset of [*s3.Client] used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Settings describes an S3-compatible bucket (AWS, MinIO, R2).
type S3Settings struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

/*
NewS3Client builds an S3 client from explicit settings.

Description: Static credentials are used when both keys are set; otherwise the
default AWS credential chain applies. A custom endpoint switches to path-style
addressing, which MinIO requires.
*/
func NewS3Client(ctx context.Context, settings S3Settings) (*s3.Client, error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}
	if settings.AccessKey != "" && settings.SecretKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("avatar_s3_config_failed: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return client, nil
}

// S3AvatarStorage uploads avatars to a bucket.
type S3AvatarStorage struct {
	client   ObjectPutter
	settings S3Settings
}

// NewS3AvatarStorage wraps an uploader for the given bucket settings.
func NewS3AvatarStorage(client ObjectPutter, settings S3Settings) *S3AvatarStorage {
	return &S3AvatarStorage{client: client, settings: settings}
}

// Save uploads the avatar and returns its object URL.
func (storage *S3AvatarStorage) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := avatarKeyPrefix + name

	_, err := storage.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(storage.settings.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("avatar_s3_put_failed: %w", err)
	}

	return storage.objectURL(key), nil
}

func (storage *S3AvatarStorage) objectURL(key string) string {
	if storage.settings.Endpoint != "" {
		return strings.TrimRight(storage.settings.Endpoint, "/") + "/" + storage.settings.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", storage.settings.Bucket, storage.settings.Region, key)
}
