package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// DefaultMemoryPageSize is the page size used when a listing asks for none.
const DefaultMemoryPageSize = 1000

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryConnector keeps buckets in process memory. It paginates listings
// the way S3 does and is meant for local development and tests.
type MemoryConnector struct {
	mu      sync.RWMutex
	buckets map[string]map[string]memoryObject
}

// NewMemoryConnector returns an empty in-memory connector.
func NewMemoryConnector() *MemoryConnector {
	return &MemoryConnector{buckets: make(map[string]map[string]memoryObject)}
}

func (m *MemoryConnector) MakeBucket(ctx context.Context, bucketName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[bucketName]; ok {
		return fmt.Errorf("%w: %s", ErrBucketExists, bucketName)
	}
	m.buckets[bucketName] = make(map[string]memoryObject)
	return nil
}

func (m *MemoryConnector) RemoveBucket(ctx context.Context, bucketName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucketName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}
	if len(objects) > 0 {
		return fmt.Errorf("%w: %s", ErrBucketNotEmpty, bucketName)
	}
	delete(m.buckets, bucketName)
	return nil
}

func (m *MemoryConnector) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read object body: %w", err)
	}
	if objectSize >= 0 && int64(len(data)) != objectSize {
		return fmt.Errorf("object %s: expected %d bytes, read %d", objectName, objectSize, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucketName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}
	objects[objectName] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryConnector) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects, ok := m.buckets[bucketName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}
	obj, ok := objects[objectName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, objectName)
	}
	// Stored slices are never mutated, so the reader can share them.
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *MemoryConnector) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucketName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}
	delete(objects, objectName)
	return nil
}

// ListObjectsPage returns keys in lexicographic order. The continuation
// token is the last key of the previous page.
func (m *MemoryConnector) ListObjectsPage(ctx context.Context, bucketName, continuationToken string, maxKeys int) (ListPage, error) {
	if err := ctx.Err(); err != nil {
		return ListPage{}, err
	}

	m.mu.RLock()
	objects, ok := m.buckets[bucketName]
	if !ok {
		m.mu.RUnlock()
		return ListPage{}, fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}
	keys := make([]string, 0, len(objects))
	for k := range objects {
		if continuationToken == "" || k > continuationToken {
			keys = append(keys, k)
		}
	}
	m.mu.RUnlock()

	sort.Strings(keys)

	if maxKeys <= 0 {
		maxKeys = DefaultMemoryPageSize
	}
	page := ListPage{Keys: keys}
	if len(keys) > maxKeys {
		page.Keys = keys[:maxKeys]
		page.IsTruncated = true
		page.NextContinuationToken = page.Keys[maxKeys-1]
	}
	return page, nil
}

// ContentType reports the content type an object was stored with.
func (m *MemoryConnector) ContentType(bucketName, objectName string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.buckets[bucketName][objectName]
	return obj.contentType, ok
}
