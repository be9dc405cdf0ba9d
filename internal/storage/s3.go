package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/noteduco342/readgroup-backend/internal/config"
)

const readPrefix = "reads"

// ErrNotConfigured is returned by NewDocumentBucket when the S3 settings are
// incomplete. Callers treat it as "run without document storage".
var ErrNotConfigured = errors.New("object storage not configured: S3_ENDPOINT, S3_BUCKET, S3_ACCESS_KEY, S3_SECRET_KEY are required")

type ObjectStat struct {
	ETag         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// DocumentStore holds read document bodies.
type DocumentStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (ObjectStat, error)
	GetObject(ctx context.Context, key string) (io.ReadCloser, ObjectStat, error)
	DeleteObject(ctx context.Context, key string) error
}

// DocumentBucket is a DocumentStore on one S3/MinIO bucket.
type DocumentBucket struct {
	client *minio.Client
	bucket string
	region string
}

func NewDocumentBucket(cfg config.S3Config) (*DocumentBucket, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentBucket{client: cl, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (b *DocumentBucket) Name() string { return b.bucket }

// EnsureBucket creates the bucket when it does not exist yet.
func (b *DocumentBucket) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region})
}

func (b *DocumentBucket) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (ObjectStat, error) {
	info, err := b.client.PutObject(ctx, b.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ObjectStat{}, err
	}
	modified := info.LastModified
	if modified.IsZero() {
		modified = time.Now().UTC()
	}
	return ObjectStat{ETag: info.ETag, Size: info.Size, ContentType: contentType, LastModified: modified}, nil
}

// GetObject opens key for reading. The object is stat'ed up front so a
// missing key fails here rather than mid-stream.
func (b *DocumentBucket) GetObject(ctx context.Context, key string) (io.ReadCloser, ObjectStat, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectStat{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, ObjectStat{}, err
	}
	return obj, ObjectStat{
		ETag:         info.ETag,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

func (b *DocumentBucket) DeleteObject(ctx context.Context, key string) error {
	return b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
}

// ReadObjectKey returns the object key of a read's document body. Ids that
// could escape the reads/ prefix are rejected.
func ReadObjectKey(readID string) (string, error) {
	readID = strings.TrimSpace(readID)
	if readID == "" {
		return "", errors.New("empty read id")
	}
	if strings.Contains(readID, "..") || strings.ContainsAny(readID, "/\\") {
		return "", errors.New("invalid read id")
	}
	return readPrefix + "/" + readID, nil
}
