// Package r2 is a small client for one bucket of an S3-compatible object
// store such as Cloudflare R2.
//
// A Client is assembled with a Builder. The four required settings (bucket
// name, endpoint URL, client id and secret key) may be given in any order and
// overwritten; Build reports the first missing one as a *MissingFieldError.
// Building never contacts the service and never touches the process
// environment; credentials go straight to the connector.
//
// # Operations
//
//   - CreateBucket / DeleteBucket
//   - PutObject: uploads bytes, content type derived from the key extension.
//   - GetObject: reads a whole object into memory.
//   - DeleteObject: removes an object; a missing key is not an error.
//   - ListKeys: drains every listing page into one slice.
//   - DownloadFile: streams an object into a directory.
//
// # Errors
//
// Failures wrap one of ErrBucketOp, ErrObjectOp, ErrInvalidDestination or ErrIO
// together with the connector error, so both can be matched with errors.Is:
//
//	_, err := client.GetObject(ctx, "missing")
//	errors.Is(err, r2.ErrObjectOp)      // true
//	errors.Is(err, storage.ErrNotFound) // true
//
// # Usage
//
//	client, err := r2.NewBuilder().
//	    BucketName("assets").
//	    URL("https://<account>.r2.cloudflarestorage.com").
//	    ClientID(accessKey).
//	    SecretKey(secretKey).
//	    Logger(log).
//	    Build()
//	keys, err := client.ListKeys(ctx)
package r2
