// Package server holds the HTTP gateway configuration.
//
// The serve command builds a Fiber app from these settings: the listen port,
// the optional API key checked by the auth middleware, and the body limit
// applied to uploads.
package server
