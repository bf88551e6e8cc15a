package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIOClient keeps invoice documents in one bucket.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// NewMinIOClient connects and creates the bucket if it does not exist yet.
func NewMinIOClient(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("bucket %s created", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
		prefix:     "invoices/",
	}, nil
}

// Put uploads data under a unique key derived from name and returns the key.
func (m *MinIOClient) Put(ctx context.Context, data []byte, name string) (string, error) {
	ext := filepath.Ext(name)
	key := fmt.Sprintf("%s%s_%s%s",
		m.prefix,
		strings.TrimSuffix(name, ext),
		uuid.New().String()[:8],
		ext)

	_, err := m.client.PutObject(ctx, m.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logrus.WithField("key", key).Info("document stored")
	return key, nil
}

// Get opens the object for reading. The caller closes it.
func (m *MinIOClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject is lazy; Stat surfaces a missing key here instead of on first Read
	if _, err := object.Stat(); err != nil {
		object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("document %s not found: %w", key, err)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	return object, nil
}

// PresignedURL returns a temporary download link (1 hour).
func (m *MinIOClient) PresignedURL(ctx context.Context, key string) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucketName, key, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".html":
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}
