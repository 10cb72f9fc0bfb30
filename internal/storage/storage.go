// Package storage abstracts where the bytes for a pwaln binary file or a
// genome-sizes directory come from: the local filesystem, or a bucket in
// Google Cloud Storage.
package storage

import (
	"context"
	"io"
)

// Source is an interface to wherever pwaln corpora are kept.
type Source interface {
	// Open returns a reader for the named object. For a filesystem
	// source, name is a path relative to the source's root; for a GCS
	// source, it is an object name within the source's bucket.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
