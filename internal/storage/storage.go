// Package storage abstracts where uploaded PDF files live. The default
// backend is a local filesystem directory; an S3-compatible backend (MinIO)
// is available for deployments without durable local disk.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// PutOptions define optional parameters for storing objects. Size should be
// the exact byte count when known, -1 otherwise.
type PutOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage stores and retrieves uploaded files by key using streaming I/O.
type Storage interface {
	// Put writes the object under key from the reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get opens the object for reading. Returns ErrNotFound when the key has
	// no backing object.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}
