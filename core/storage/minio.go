package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioConnector talks to S3-compatible services through the MinIO client.
type minioConnector struct {
	client *minio.Client
	region string
}

func newMinioConnector(cfg Config) (*minioConnector, error) {
	endpoint, err := cfg.EndpointURL()
	if err != nil {
		return nil, err
	}

	// Minio expects endpoint without scheme
	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    endpoint.Scheme == "https",
		Region:    cfg.region(),
		Transport: newTransport(cfg.timeout()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioConnector{client: client, region: cfg.region()}, nil
}

func (c *minioConnector) MakeBucket(ctx context.Context, bucketName string) error {
	return minioError(c.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: c.region}))
}

func (c *minioConnector) RemoveBucket(ctx context.Context, bucketName string) error {
	return minioError(c.client.RemoveBucket(ctx, bucketName))
}

func (c *minioConnector) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return minioError(err)
}

func (c *minioConnector) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	// GetObject is lazy; Stat forces the request so a missing key fails here
	// rather than on the first Read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, minioError(err)
	}
	return obj, nil
}

func (c *minioConnector) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	return minioError(c.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}))
}

// ListObjectsPage fetches one page through Core.ListObjectsV2, the only MinIO
// call that exposes continuation tokens. It takes no context, so ctx is only
// checked before the request; an in-flight page is bounded by the transport
// timeouts instead.
func (c *minioConnector) ListObjectsPage(ctx context.Context, bucketName, continuationToken string, maxKeys int) (ListPage, error) {
	if err := ctx.Err(); err != nil {
		return ListPage{}, err
	}

	core := minio.Core{Client: c.client}
	res, err := core.ListObjectsV2(bucketName, "", "", continuationToken, "", maxKeys)
	if err != nil {
		return ListPage{}, minioError(err)
	}

	page := ListPage{
		Keys:                  make([]string, 0, len(res.Contents)),
		IsTruncated:           res.IsTruncated,
		NextContinuationToken: res.NextContinuationToken,
	}
	for _, obj := range res.Contents {
		page.Keys = append(page.Keys, obj.Key)
	}
	return page, nil
}

func minioError(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	return classify(resp.Code, resp.StatusCode, err)
}
