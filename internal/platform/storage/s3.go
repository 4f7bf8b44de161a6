// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// uploadPartSize is the multipart chunk used for large video objects.
const uploadPartSize = 8 * 1024 * 1024

// S3Options configures [NewS3Store].
type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// S3Store implements [MediaStore] backed by an S3-compatible service.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Store configures an uploader targeting the provided object store.
//
// Credentials come from the default AWS chain (env, shared config, IMDS).
func NewS3Store(ctx context.Context, options S3Options) (*S3Store, error) {
	if strings.TrimSpace(options.Bucket) == "" {
		return nil, fmt.Errorf("storage: s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(options.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(options.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = uploadPartSize
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(options.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", options.Bucket, options.Region)
	}

	return &S3Store{
		uploader: uploader,
		bucket:   options.Bucket,
		baseURL:  baseURL,
	}, nil
}

// Save uploads the provided content to the configured bucket and returns a public location.
func (store *S3Store) Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(folder, filename)

	_, err := store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("storage: s3 upload %s: %w", key, err)
	}

	return store.baseURL + "/" + key, nil
}
