// Package storage provides an abstraction layer for object storage services.
//
// The Connector interface is the narrow set of calls the r2 client needs:
// bucket creation and removal, object put/get/remove, and one page of a
// bucket listing at a time. Continuation tokens stay opaque; callers pass
// back whatever the previous page returned.
//
// # Drivers
//
//   - s3: the AWS SDK for Go v2 with path-style addressing and static credentials.
//     This is the default and works with Cloudflare R2 and other S3-compatible services.
//   - minio: the MinIO Go client, for self-hosted MinIO or any S3-compatible endpoint.
//   - memory: an in-process store used for local development and tests.
//
// Provider error codes are mapped onto ErrNotFound, ErrBucketNotFound,
// ErrBucketExists and ErrBucketNotEmpty so callers can test them with errors.Is
// regardless of the driver. Drivers never retry a failed request.
//
// # Usage
//
//	conn, err := storage.NewConnector(storage.Config{
//	    Endpoint:  "https://<account>.r2.cloudflarestorage.com",
//	    AccessKey: "...",
//	    SecretKey: "...",
//	})
//	page, err := conn.ListObjectsPage(ctx, "assets", "", 1000)
package storage
