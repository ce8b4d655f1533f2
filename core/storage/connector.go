package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrBucketNotFound is returned when the target bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrBucketExists is returned when creating a bucket that is already there.
	ErrBucketExists = errors.New("bucket already exists")
	// ErrBucketNotEmpty is returned when removing a bucket that still holds objects.
	ErrBucketNotEmpty = errors.New("bucket not empty")
)

// ListPage is one page of a bucket listing.
type ListPage struct {
	// Keys holds the object keys of this page in service order.
	Keys []string
	// IsTruncated reports whether more pages follow.
	IsTruncated bool
	// NextContinuationToken is passed to the next ListObjectsPage call.
	NextContinuationToken string
}

// Connector defines the storage operations the client relies on.
// Implementations must be safe for concurrent use.
type Connector interface {
	// MakeBucket creates a new bucket.
	MakeBucket(ctx context.Context, bucketName string) error
	// RemoveBucket deletes an empty bucket.
	RemoveBucket(ctx context.Context, bucketName string) error
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error
	// GetObject opens an object for streaming. The caller closes the reader.
	GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string) error
	// ListObjectsPage fetches one listing page starting at continuationToken
	// (empty for the first page).
	ListObjectsPage(ctx context.Context, bucketName, continuationToken string, maxKeys int) (ListPage, error)
}

// NewConnector creates the connector selected by cfg.Driver. No request is
// sent to the service.
func NewConnector(cfg Config) (Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.driver() {
	case DriverMinio:
		return newMinioConnector(cfg)
	case DriverMemory:
		return NewMemoryConnector(), nil
	default:
		return newS3Connector(cfg)
	}
}

// newTransport builds an HTTP transport with strict connection timeouts.
// Operation deadlines come from the caller's context.
func newTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

// classify wraps err with the sentinel matching a provider error code.
func classify(code string, status int, err error) error {
	switch code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return fmt.Errorf("%w: %w", ErrBucketExists, err)
	case "BucketNotEmpty":
		return fmt.Errorf("%w: %w", ErrBucketNotEmpty, err)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
