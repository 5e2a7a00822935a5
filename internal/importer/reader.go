package importer

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrUnreadable      = errors.New("file could not be read")
	ErrTooLarge        = errors.New("file too large")
)

// Accept lists the media types and file extensions an upload may claim.
type Accept struct {
	Types      []string
	Extensions []string
}

var (
	AcceptUsers = Accept{
		Types:      []string{"text/csv"},
		Extensions: []string{".csv"},
	}
	AcceptQuestions = Accept{
		Types: []string{
			"text/csv",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"text/plain",
		},
		Extensions: []string{".csv", ".xlsx", ".txt"},
	}
)

// Allows reports whether a file with the given name and content type may be
// uploaded. Either a matching type or a matching extension is enough.
func (a Accept) Allows(name, contentType string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && slices.Contains(a.Types, mt) {
		return true
	}
	return slices.Contains(a.Extensions, strings.ToLower(filepath.Ext(name)))
}

// ReadUpload reads an uploaded file as text. The content is always treated as
// text whatever its claimed type; a UTF-8 or UTF-16 byte order mark is
// honored and removed. limit bounds the raw upload size; limit <= 0 disables
// the check.
func ReadUpload(r io.Reader, name, contentType string, accept Accept, limit int64) (string, error) {
	if !accept.Allows(name, contentType) {
		return "", fmt.Errorf("%s: %w", name, ErrUnsupportedFile)
	}
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return "", ErrTooLarge
	}
	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(data), nil
}
