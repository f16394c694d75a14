// Package storage issues presigned links for attachment blobs. It never
// touches blob contents; uploads and downloads go straight to the object
// store through the links it mints.
package storage

import "context"

// LinkProvider produces time-limited links for an attachment identifier.
// No check is made that the identifier corresponds to an uploaded object:
// links derive deterministically from the id and the configured bucket.
type LinkProvider interface {
	// UploadLink returns a write-capable link for the given attachment id.
	UploadLink(ctx context.Context, attachmentID string) (string, error)

	// RetrievalLink returns a read-capable link for the given attachment id.
	RetrievalLink(ctx context.Context, attachmentID string) (string, error)
}
