// Package objects exposes the bucket of an r2 client over HTTP.
//
// # HTTP Endpoints
//
//   - GET /objects : Lists every key in the bucket.
//   - GET /objects/<key> : Returns the object bytes with a content type derived from the key.
//   - PUT /objects/<key> : Stores the request body under key.
//   - DELETE /objects/<key> : Deletes the object (missing keys succeed).
//
// Missing objects map to 404; any other storage failure maps to 502.
package objects
