package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartHeader builds a real FileHeader by parsing a multipart body.
func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadPolicy_Validate(t *testing.T) {
	assert.NoError(t, CVPolicy.Validate(multipartHeader(t, "resume.PDF", []byte("%PDF-1.4"))))
	assert.NoError(t, LogoPolicy.Validate(multipartHeader(t, "logo.webp", []byte("img"))))

	err := CVPolicy.Validate(multipartHeader(t, "resume.exe", []byte("MZ")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	err = LogoPolicy.Validate(multipartHeader(t, "logo.png", bytes.Repeat([]byte{1}, 2<<20+1)))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	assert.ErrorIs(t, CVPolicy.Validate(nil), apperrors.ErrNoFile)
}

func newLocal(t *testing.T, publicURL string) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), publicURL, zerolog.Nop())
	require.NoError(t, err)
	return storage
}

func TestLocalStorage_StoreResolveDelete(t *testing.T) {
	storage := newLocal(t, "http://localhost:8080/uploads/")

	url, err := storage.Store(multipartHeader(t, "My CV.PDF", []byte("%PDF-1.4")), CVPolicy)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/cvs/"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	full, err := storage.Resolve(url)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(storage.root, "cvs", path.Base(url)), full)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	entries, err := os.ReadDir(filepath.Join(storage.root, "cvs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may be left behind")

	require.NoError(t, storage.Delete(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, storage.Delete(url))
	assert.NoError(t, storage.Delete(""))
}

func TestLocalStorage_StoreEnforcesSizeOnContent(t *testing.T) {
	storage := newLocal(t, "/uploads")
	small := UploadPolicy{Dir: "logos", Extensions: []string{".png"}, MaxBytes: 4}

	_, err := storage.Store(multipartHeader(t, "logo.png", []byte("12345")), small)
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(storage.root, "logos"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_ResolveStaysInRoot(t *testing.T) {
	storage := newLocal(t, "/uploads")

	for _, bad := range []string{"", "../", "/uploads/..", "/uploads/cvs/..", "name-only.pdf"} {
		_, err := storage.Resolve(bad)
		assert.ErrorIs(t, err, ErrOutsideStorage, bad)
	}

	full, err := storage.Resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, storage.root), full)
}
