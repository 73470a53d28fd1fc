package storage

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func formFile(t *testing.T, name, mime, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", mime)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaverCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	_, err := NewSaver(dir, "/uploads/posts")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSaveKeepsExtensionAndBytes(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSaver(dir, "/uploads/posts")
	require.NoError(t, err)

	url, mime, err := s.Save(formFile(t, "syllabus.pdf", "application/pdf", "pdf bytes"))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", mime)
	require.True(t, strings.HasPrefix(url, "/uploads/posts/"))
	require.True(t, strings.HasSuffix(url, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	require.Equal(t, "pdf bytes", string(data))
}

func TestSaveDistinctNames(t *testing.T) {
	s, err := NewSaver(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, _, err := s.Save(formFile(t, "a.png", "image/png", "a"))
	require.NoError(t, err)
	b, _, err := s.Save(formFile(t, "b.png", "image/png", "b"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
