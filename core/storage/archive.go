package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
)

// Archiver writes JSON documents into one bucket under a fixed prefix.
type Archiver struct {
	client Client
	bucket string
	region string
	prefix string
}

// NewArchiver creates an archiver for the configured bucket and prefix.
func NewArchiver(client Client, cfg Config) *Archiver {
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
	}
}

// Archive stores v as indented JSON at <prefix>/<name>.json and returns the object key.
// The bucket is created when it does not exist yet.
func (a *Archiver) Archive(ctx context.Context, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	key := path.Join(a.prefix, name+".json")
	_, err = a.client.PutObject(
		ctx,
		a.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", key, err)
	}

	return key, nil
}
