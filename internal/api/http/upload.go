package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/mind-engage/mindengage-authoring/internal/importer"
	"github.com/mind-engage/mindengage-authoring/internal/storage"
)

// Uploads configures the multipart import endpoints.
type Uploads struct {
	Blobs    storage.BlobStore // optional raw archive
	MaxBytes int64
	Parse    importer.Options
}

type upload struct {
	Name string
	Text string
	raw  bytes.Buffer
}

// multipartSlack covers form fields and part headers on top of the file.
const multipartSlack = 1 << 20

// read pulls the "file" part out of the request and decodes it as text.
func (u Uploads) read(w http.ResponseWriter, r *http.Request, accept importer.Accept) (*upload, error) {
	if u.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, u.MaxBytes+multipartSlack)
	}
	err := r.ParseMultipartForm(32 << 10)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, importer.ErrTooLarge
		}
		return nil, importer.ErrUnreadable
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, importer.ErrUnreadable
	}
	defer f.Close()
	up := &upload{Name: hdr.Filename}
	up.Text, err = importer.ReadUpload(io.TeeReader(f, &up.raw), hdr.Filename, hdr.Header.Get("Content-Type"), accept, u.MaxBytes)
	if err != nil {
		return nil, err
	}
	return up, nil
}

// archive keeps the raw bytes of an accepted upload. Failures are logged and
// leave the key empty.
func (u Uploads) archive(ctx context.Context, up *upload) string {
	if u.Blobs == nil {
		return ""
	}
	key, err := storage.ArchiveUpload(ctx, u.Blobs, up.Name, &up.raw)
	if err != nil {
		log.Printf("archive %s: %v", up.Name, err)
		return ""
	}
	return key
}
