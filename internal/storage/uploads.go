package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

// Saver writes multipart uploads into a local directory and hands back the
// public path they are served under. Files are kept byte-for-byte as
// uploaded; there is no type or size validation and no cleanup policy.
type Saver struct {
	dir    string
	prefix string
}

// NewSaver ensures dir exists. prefix is the URL path the directory is
// mounted at, e.g. "/uploads/posts".
func NewSaver(dir, prefix string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir, prefix: prefix}, nil
}

// Save stores the upload under a nanosecond-timestamp name that keeps the
// original extension, and returns its public URL path and MIME type.
func (s *Saver) Save(fh *multipart.FileHeader) (publicURL, mimeType string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	name := strconv.FormatInt(time.Now().UnixNano(), 10) + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	return path.Join(s.prefix, name), fh.Header.Get("Content-Type"), nil
}
