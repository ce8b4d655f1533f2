package r2_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"r2-manager/core/r2"
	"r2-manager/core/storage"
	"r2-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, conn storage.Connector, pageSize int) *r2.Client {
	t.Helper()
	client, err := r2.NewBuilder().
		BucketName("test-bucket").
		URL("http://localhost:9000").
		ClientID("id").
		SecretKey("secret").
		PageSize(pageSize).
		Logger(zap.NewNop()).
		Connector(conn).
		Build()
	require.NoError(t, err)
	return client
}

func newMemoryClient(t *testing.T, pageSize int) (*r2.Client, *storage.MemoryConnector) {
	t.Helper()
	conn := storage.NewMemoryConnector()
	client := newTestClient(t, conn, pageSize)
	require.NoError(t, client.CreateBucket(context.Background()))
	return client, conn
}

func TestClient_Buckets(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, 0)

	err := client.CreateBucket(ctx)
	assert.ErrorIs(t, err, r2.ErrBucketOp)
	assert.ErrorIs(t, err, storage.ErrBucketExists)

	_, err = client.PutObject(ctx, "a.txt", []byte("a"))
	require.NoError(t, err)
	assert.ErrorIs(t, client.DeleteBucket(ctx), r2.ErrBucketOp)

	_, err = client.DeleteObject(ctx, "a.txt")
	require.NoError(t, err)
	assert.NoError(t, client.DeleteBucket(ctx))
}

func TestClient_BucketOpFailure(t *testing.T) {
	conn := new(mocks.Connector)
	conn.On("MakeBucket", mock.Anything, "test-bucket").Return(assert.AnError)
	conn.On("RemoveBucket", mock.Anything, "test-bucket").Return(assert.AnError)
	client := newTestClient(t, conn, 0)

	err := client.CreateBucket(context.Background())
	assert.ErrorIs(t, err, r2.ErrBucketOp)
	assert.ErrorIs(t, err, assert.AnError)

	err = client.DeleteBucket(context.Background())
	assert.ErrorIs(t, err, r2.ErrBucketOp)
	conn.AssertExpectations(t)
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, 0)

	large := make([]byte, 5<<20)
	rand.New(rand.NewSource(42)).Read(large)

	tests := []struct {
		name string
		body []byte
	}{
		{"Empty", []byte{}},
		{"SingleByte", []byte{0x7f}},
		{"MultiMegabyte", large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "roundtrip/" + tt.name
			got, err := client.PutObject(ctx, key, tt.body)
			require.NoError(t, err)
			assert.Equal(t, key, got)

			data, err := client.GetObject(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, tt.body, data)
		})
	}
}

func TestClient_DeleteObject(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, 0)

	_, err := client.PutObject(ctx, "k", []byte("value"))
	require.NoError(t, err)

	deleted, err := client.DeleteObject(ctx, "k")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = client.GetObject(ctx, "k")
	assert.ErrorIs(t, err, r2.ErrObjectOp)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	t.Run("MissingKeyIsSuccess", func(t *testing.T) {
		deleted, err := client.DeleteObject(ctx, "never-existed")
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("ConnectorNotFoundIsSuccess", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("RemoveObject", mock.Anything, "test-bucket", "gone").Return(fmt.Errorf("%w: gone", storage.ErrNotFound))
		deleted, err := newTestClient(t, conn, 0).DeleteObject(ctx, "gone")
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Failure", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("RemoveObject", mock.Anything, "test-bucket", "k").Return(assert.AnError)
		deleted, err := newTestClient(t, conn, 0).DeleteObject(ctx, "k")
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.False(t, deleted)
	})
}

func TestClient_EmptyKey(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, new(mocks.Connector), 0)

	_, err := client.PutObject(ctx, "", []byte("x"))
	assert.ErrorIs(t, err, r2.ErrObjectOp)
	_, err = client.GetObject(ctx, "")
	assert.ErrorIs(t, err, r2.ErrObjectOp)
	_, err = client.DeleteObject(ctx, "")
	assert.ErrorIs(t, err, r2.ErrObjectOp)
}

func TestClient_PutObjectContentType(t *testing.T) {
	tests := []struct {
		key         string
		contentType string
	}{
		{"report.pdf", "application/pdf"},
		{"noext", r2.DefaultContentType},
		{"image.png", "image/png"},
		{"data.unknownext", r2.DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			conn := new(mocks.Connector)
			conn.On("PutObject", mock.Anything, "test-bucket", tt.key, mock.Anything, int64(3), tt.contentType).Return(nil)

			key, err := newTestClient(t, conn, 0).PutObject(context.Background(), tt.key, []byte("abc"))
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			conn.AssertExpectations(t)
		})
	}

	t.Run("Failure", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := newTestClient(t, conn, 0).PutObject(context.Background(), "a", []byte("abc"))
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", r2.ContentType("docs/report.pdf"))
	assert.Equal(t, r2.DefaultContentType, r2.ContentType("noext"))
	assert.Equal(t, r2.DefaultContentType, r2.ContentType("dir.d/noext"))
	assert.Contains(t, r2.ContentType("notes.txt"), "text/plain")
}

func TestClient_ListKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("Paginated", func(t *testing.T) {
		client, _ := newMemoryClient(t, 3)

		var want []string
		for i := 0; i < 10; i++ {
			key := fmt.Sprintf("dir/key-%02d", i)
			want = append(want, key)
			_, err := client.PutObject(ctx, key, []byte{byte(i)})
			require.NoError(t, err)
		}

		keys, err := client.ListKeys(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, keys)
	})

	t.Run("EmptyBucket", func(t *testing.T) {
		client, _ := newMemoryClient(t, 3)
		keys, err := client.ListKeys(ctx)
		require.NoError(t, err)
		assert.NotNil(t, keys)
		assert.Empty(t, keys)
	})

	t.Run("TokensPassedThrough", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("ListObjectsPage", mock.Anything, "test-bucket", "", 2).
			Return(storage.ListPage{Keys: []string{"a", "b"}, IsTruncated: true, NextContinuationToken: "t1"}, nil).Once()
		conn.On("ListObjectsPage", mock.Anything, "test-bucket", "t1", 2).
			Return(storage.ListPage{Keys: []string{"c"}}, nil).Once()

		keys, err := newTestClient(t, conn, 2).ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, keys)
		conn.AssertExpectations(t)
	})

	t.Run("PageFailureFailsWholeCall", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("ListObjectsPage", mock.Anything, "test-bucket", "", 0).
			Return(storage.ListPage{Keys: []string{"a"}, IsTruncated: true, NextContinuationToken: "t1"}, nil).Once()
		conn.On("ListObjectsPage", mock.Anything, "test-bucket", "t1", 0).
			Return(storage.ListPage{}, assert.AnError).Once()

		keys, err := newTestClient(t, conn, 0).ListKeys(ctx)
		assert.Nil(t, keys)
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("TruncatedWithoutToken", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("ListObjectsPage", mock.Anything, "test-bucket", "", 0).
			Return(storage.ListPage{Keys: []string{"a"}, IsTruncated: true}, nil).Once()

		keys, err := newTestClient(t, conn, 0).ListKeys(ctx)
		assert.Nil(t, keys)
		assert.ErrorIs(t, err, r2.ErrObjectOp)
	})
}

func TestClient_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, 7)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := client.PutObject(ctx, fmt.Sprintf("obj-%d", i), []byte("x"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	keys, err := client.ListKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 20)
}

type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("connection reset")
	}
	r.done = true
	return copy(p, r.data), nil
}

func (r *failingReader) Close() error { return nil }

func TestClient_DownloadFile(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, 0)

	body := make([]byte, 200*1024)
	rand.New(rand.NewSource(7)).Read(body)
	_, err := client.PutObject(ctx, "nested/dir/file.bin", body)
	require.NoError(t, err)

	t.Run("WritesNestedPath", func(t *testing.T) {
		dir := t.TempDir()
		path, err := client.DownloadFile(ctx, "nested/dir/file.bin", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "nested", "dir", "file.bin"), path)

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		expected, err := client.GetObject(ctx, "nested/dir/file.bin")
		require.NoError(t, err)
		assert.Equal(t, expected, written)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := client.DownloadFile(ctx, "nested/dir/file.bin", filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, r2.ErrInvalidDestination)
	})

	t.Run("DestinationIsFile", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := client.DownloadFile(ctx, "nested/dir/file.bin", file)
		assert.ErrorIs(t, err, r2.ErrInvalidDestination)
	})

	t.Run("KeyEscapesDirectory", func(t *testing.T) {
		_, err := client.DownloadFile(ctx, "../escape.bin", t.TempDir())
		assert.ErrorIs(t, err, r2.ErrInvalidDestination)
	})

	t.Run("ParentIsFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested"), []byte("x"), 0o644))
		_, err := client.DownloadFile(ctx, "nested/dir/file.bin", dir)
		assert.ErrorIs(t, err, r2.ErrInvalidDestination)
	})

	t.Run("MissingObject", func(t *testing.T) {
		dir := t.TempDir()
		_, err := client.DownloadFile(ctx, "missing.bin", dir)
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoFileExists(t, filepath.Join(dir, "missing.bin"))
	})

	t.Run("MissingNestedObjectLeavesNoDirectories", func(t *testing.T) {
		dir := t.TempDir()
		_, err := client.DownloadFile(ctx, "a/b/c.bin", dir)
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.NoDirExists(t, filepath.Join(dir, "a"))
	})

	t.Run("StreamFailureRemovesPartialFile", func(t *testing.T) {
		conn := new(mocks.Connector)
		conn.On("GetObject", mock.Anything, "test-bucket", "broken.bin").
			Return(io.ReadCloser(&failingReader{data: []byte("partial")}), nil)

		dir := t.TempDir()
		_, err := newTestClient(t, conn, 0).DownloadFile(ctx, "broken.bin", dir)
		assert.ErrorIs(t, err, r2.ErrObjectOp)
		assert.NoFileExists(t, filepath.Join(dir, "broken.bin"))
	})
}
