package r2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"r2-manager/core/storage"

	"go.uber.org/zap"
)

// DefaultContentType is used for keys whose extension has no known type.
const DefaultContentType = "application/octet-stream"

// Client performs bucket and object operations against one fixed bucket.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	bucket   string
	conn     storage.Connector
	logger   *zap.Logger
	pageSize int
}

// BucketName returns the bucket every operation targets.
func (c *Client) BucketName() string {
	return c.bucket
}

// CreateBucket creates the client's bucket.
func (c *Client) CreateBucket(ctx context.Context) error {
	if err := c.conn.MakeBucket(ctx, c.bucket); err != nil {
		c.logger.Error("Bucket creation failed", zap.Error(err))
		return fmt.Errorf("%w: create %s: %w", ErrBucketOp, c.bucket, err)
	}
	c.logger.Info("Bucket created")
	return nil
}

// DeleteBucket removes the client's bucket. The bucket must be empty.
func (c *Client) DeleteBucket(ctx context.Context) error {
	if err := c.conn.RemoveBucket(ctx, c.bucket); err != nil {
		c.logger.Error("Bucket deletion failed", zap.Error(err))
		return fmt.Errorf("%w: delete %s: %w", ErrBucketOp, c.bucket, err)
	}
	c.logger.Info("Bucket deleted")
	return nil
}

// PutObject uploads body under key and returns the key. The content type is
// derived from the key's extension.
func (c *Client) PutObject(ctx context.Context, key string, body []byte) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: put: empty key", ErrObjectOp)
	}

	contentType := ContentType(key)
	err := c.conn.PutObject(ctx, c.bucket, key, bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		c.logger.Error("Put object failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: put %s: %w", ErrObjectOp, key, err)
	}

	c.logger.Info("Put object",
		zap.String("key", key),
		zap.Int("size", len(body)),
		zap.String("content_type", contentType),
	)
	return key, nil
}

// GetObject returns the full content of the object stored under key.
func (c *Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: get: empty key", ErrObjectOp)
	}

	rc, err := c.conn.GetObject(ctx, c.bucket, key)
	if err != nil {
		c.logger.Error("Get object failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: get %s: %w", ErrObjectOp, key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		c.logger.Error("Reading object body failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: read %s: %w", ErrObjectOp, key, err)
	}

	c.logger.Info("Got object", zap.String("key", key), zap.Int("size", len(data)))
	return data, nil
}

// DeleteObject removes the object stored under key. Deleting a key that does
// not exist succeeds.
func (c *Client) DeleteObject(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("%w: delete: empty key", ErrObjectOp)
	}

	if err := c.conn.RemoveObject(ctx, c.bucket, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.logger.Info("Deleted object (already absent)", zap.String("key", key))
			return true, nil
		}
		c.logger.Error("Delete object failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("%w: delete %s: %w", ErrObjectOp, key, err)
	}

	c.logger.Info("Deleted object", zap.String("key", key))
	return true, nil
}

// ListKeys returns every key in the bucket. Pages are fetched until the
// service reports the listing is complete; any page failure fails the call.
func (c *Client) ListKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	token := ""

	for page := 1; ; page++ {
		res, err := c.conn.ListObjectsPage(ctx, c.bucket, token, c.pageSize)
		if err != nil {
			c.logger.Error("List objects failed", zap.Int("page", page), zap.Error(err))
			return nil, fmt.Errorf("%w: list page %d: %w", ErrObjectOp, page, err)
		}
		c.logger.Debug("Fetched listing page",
			zap.Int("page", page),
			zap.Int("keys", len(res.Keys)),
			zap.Bool("truncated", res.IsTruncated),
		)

		keys = append(keys, res.Keys...)
		if !res.IsTruncated {
			break
		}
		if res.NextContinuationToken == "" {
			err := errors.New("truncated listing without continuation token")
			c.logger.Error("List objects failed", zap.Int("page", page), zap.Error(err))
			return nil, fmt.Errorf("%w: list page %d: %w", ErrObjectOp, page, err)
		}
		token = res.NextContinuationToken
	}

	c.logger.Info("Listed objects", zap.Int("count", len(keys)))
	return keys, nil
}

// ContentType returns the MIME type for key based on its extension, or
// DefaultContentType when the extension is missing or unknown.
func ContentType(key string) string {
	ext := path.Ext(key)
	if ext == "" {
		return DefaultContentType
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return DefaultContentType
}
