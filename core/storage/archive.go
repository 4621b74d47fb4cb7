package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive stores run reports as JSON objects keyed by day and run id.
type Archive struct {
	client Client
	bucket string
	region string
	prefix string
}

// NewArchive creates an archive writing to the configured bucket.
func NewArchive(client Client, cfg Config) *Archive {
	return &Archive{client: client, bucket: cfg.Bucket, region: cfg.Region, prefix: cfg.Prefix}
}

// Key returns the object name of a run started at the given time.
func (a *Archive) Key(runID string, startedAt time.Time) string {
	return path.Join(a.prefix, startedAt.UTC().Format("2006-01-02"), runID+".json")
}

// Put uploads v as JSON, creating the bucket if absent, and returns the object name.
func (a *Archive) Put(ctx context.Context, runID string, startedAt time.Time, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
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

	key := a.Key(runID, startedAt)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// Get downloads the object stored under key and decodes it into v.
func (a *Archive) Get(ctx context.Context, key string, v any) error {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
