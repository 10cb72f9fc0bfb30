package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalSource is a Source backed by a directory on the local filesystem.
type LocalSource struct {
	Dir string
}

// Open opens <Dir>/<name>.
func (s LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Dir, name))
}
