package types

import "errors"

// BlobStore reads and writes opaque blobs by logical name. The store owns its
// blobs exclusively; nothing else writes them.
type BlobStore interface {
	// Get returns the blob contents. Returns ErrBlobNotFound if the blob
	// has never been written.
	Get(name string) ([]byte, error)

	// Put replaces the blob contents. A Put either fully succeeds or leaves
	// the previous contents in place.
	Put(name string, data []byte) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// ImageChecker reports whether an image path resolves to an existing file.
// Supplying one to the store enables strict image-path validation.
type ImageChecker interface {
	Exists(path string) bool
}

// Blob errors.
var (
	ErrBlobNotFound    = errors.New("blob not found")
	ErrInvalidBlobName = errors.New("invalid blob name")
)
