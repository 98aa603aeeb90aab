// Package snapshot archives pre-import hierarchy exports in an
// S3-compatible bucket.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
)

const contentType = "application/json"

// Store writes one object per snapshot, keyed {owner}/{timestamp}.json.
type Store struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// New connects to the configured endpoint. It does not touch the network;
// call EnsureBucket before the first Save.
func New(cfg config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: minio client: %w", err)
	}
	return &Store{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("snapshot: bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("snapshot: make bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Save uploads body and returns its object key.
func (s *Store) Save(ctx context.Context, ownerID uuid.UUID, body []byte) (string, error) {
	key := fmt.Sprintf("%s/%s.json", ownerID, s.now().UTC().Format("20060102T150405.000000000Z"))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: put %s: %w", key, err)
	}
	return key, nil
}

// Load returns the body of a stored snapshot.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("snapshot: get %s: %w", key, err)
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", key, err)
	}
	return body, nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("snapshot: bucket exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("snapshot: bucket %s missing", s.bucket)
	}
	return nil
}
