package mocks

import (
	"context"
	"io"

	"r2-manager/core/storage"

	"github.com/stretchr/testify/mock"
)

// Connector is a mock implementation of storage.Connector
type Connector struct {
	mock.Mock
}

func (m *Connector) MakeBucket(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *Connector) RemoveBucket(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *Connector) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *Connector) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Connector) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *Connector) ListObjectsPage(ctx context.Context, bucketName, continuationToken string, maxKeys int) (storage.ListPage, error) {
	args := m.Called(ctx, bucketName, continuationToken, maxKeys)
	return args.Get(0).(storage.ListPage), args.Error(1)
}
