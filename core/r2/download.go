package r2

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const downloadChunkSize = 64 * 1024

// DownloadFile streams the object stored under key into dir and returns the
// written path. Slashes in the key become subdirectories of dir. Chunks are
// written in arrival order; on failure the partial file is removed.
func (c *Client) DownloadFile(ctx context.Context, key, dir string) (string, error) {
	target, err := downloadTarget(key, dir)
	if err != nil {
		c.logger.Error("Invalid download destination", zap.String("key", key), zap.String("dir", dir), zap.Error(err))
		return "", err
	}

	body, err := c.conn.GetObject(ctx, c.bucket, key)
	if err != nil {
		c.logger.Error("Download failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: get %s: %w", ErrObjectOp, key, err)
	}
	defer body.Close()

	// Parents are created once the stream is open so a failed get leaves dir untouched.
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		c.logger.Error("Creating parent directories failed", zap.String("path", target), zap.Error(err))
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidDestination, filepath.Dir(target), err)
	}

	written, err := writeStream(target, body)
	if err != nil {
		_ = os.Remove(target)
		c.logger.Error("Download failed", zap.String("key", key), zap.String("path", target), zap.Error(err))
		return "", err
	}

	c.logger.Info("Downloaded object",
		zap.String("key", key),
		zap.String("path", target),
		zap.Int64("size", written),
	)
	return target, nil
}

// downloadTarget checks that dir is an existing directory and joins key onto
// it. Keys resolving outside dir are rejected.
func downloadTarget(key, dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidDestination, dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidDestination, dir)
	}

	if key == "" || strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: key %q does not name a file", ErrInvalidDestination, key)
	}

	root := filepath.Clean(dir)
	target := filepath.Join(root, filepath.FromSlash(key))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: key %q escapes %s", ErrInvalidDestination, key, dir)
	}
	return target, nil
}

// writeStream copies r into a new file at path chunk by chunk. Read failures
// are object errors, write failures are local i/o errors.
func writeStream(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}

	w := bufio.NewWriterSize(f, downloadChunkSize)
	buf := make([]byte, downloadChunkSize)
	var written int64

	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				_ = f.Close()
				return written, fmt.Errorf("%w: write %s: %w", ErrIO, path, werr)
			}
			written += int64(n)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			_ = f.Close()
			return written, fmt.Errorf("%w: read stream: %w", ErrObjectOp, rerr)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return written, fmt.Errorf("%w: flush %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return written, nil
}
