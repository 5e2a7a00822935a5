package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// ImportKey names the archive slot for one uploaded file:
// imports/<uuid>/<base name>.
func ImportKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return path.Join("imports", uuid.NewString(), base)
}

// ArchiveUpload stores the raw bytes of an upload and returns its key.
func ArchiveUpload(ctx context.Context, bs BlobStore, filename string, r io.Reader) (string, error) {
	return bs.Put(ctx, ImportKey(filename), r)
}
