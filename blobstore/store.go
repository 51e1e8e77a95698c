// Package blobstore abstracts where persisted record stores live.
//
// A snapshot is one immutable blob written once and read many times.
// Built-in implementations:
//
//   - LocalStore: local filesystem, mmap-backed reads
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO and other S3-compatible object storage
//
// Implementations must be safe for concurrent use.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// BlobStore reads and writes immutable blobs.
type BlobStore interface {
	// Open opens an existing blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a blob for streaming writes. The blob becomes
	// visible on Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a streaming write handle.
type WritableBlob interface {
	io.Writer
	// Close finalizes the blob and makes it visible.
	Close() error
	// Abort discards the blob.
	Abort() error
}

// Mappable is an optional interface for Blobs backed by memory that can
// be accessed without copying. The slice is valid until Close.
type Mappable interface {
	Bytes() ([]byte, error)
}

// Reader adapts a Blob into a sequential io.Reader.
func Reader(b Blob) io.Reader {
	return io.NewSectionReader(b, 0, b.Size())
}
