package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	apperrors "storefront-service/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestValidateImage_Order(t *testing.T) {
	err := ValidateImage(nil)
	assert.Equal(t, "No file provided", apperrors.MessageOf(err))
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	// A large non-image is reported as the wrong type first.
	pdf := newFileHeader(t, "manual.pdf", "application/pdf", bytes.Repeat([]byte("x"), MaxImageSize+1))
	assert.Equal(t, "File must be an image", apperrors.MessageOf(ValidateImage(pdf)))

	big := newFileHeader(t, "cover.png", "image/png", bytes.Repeat([]byte("x"), 6*1024*1024))
	assert.Equal(t, "File size must be less than 5MB", apperrors.MessageOf(ValidateImage(big)))

	exact := newFileHeader(t, "cover.png", "image/png", bytes.Repeat([]byte("x"), MaxImageSize))
	assert.NoError(t, ValidateImage(exact))
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "png", FileExtension("cover.png"))
	assert.Equal(t, "gz", FileExtension("archive.tar.gz"))
	assert.Equal(t, "cover", FileExtension("cover"))
	assert.Equal(t, "", FileExtension("trailing."))
}

func TestGenerateFileName(t *testing.T) {
	now := time.UnixMilli(1760000000123)
	name, err := GenerateFileName("Box Art.JPG", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^1760000000123-[0-9a-z]+\.JPG$`), name)

	other, err := GenerateFileName("Box Art.JPG", now)
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestUploadService_Upload(t *testing.T) {
	store := &fakeImageStore{baseURL: "https://cdn.example.com"}
	svc := NewUploadService(store, nil)
	content := bytes.Repeat([]byte{0x89}, 1024)

	res, err := svc.Upload(context.Background(), newFileHeader(t, "cover.png", "image/png", content))
	require.NoError(t, err)

	assert.Regexp(t, `^\d+-[0-9a-z]+\.png$`, res.FileName)
	assert.Equal(t, "https://cdn.example.com/"+res.FileName, res.URL)
	require.Len(t, store.keys, 1)
	assert.Equal(t, res.FileName, store.keys[0])
	assert.Equal(t, "image/png", store.types[0])
	assert.Equal(t, int64(1024), store.sizes[0])
	assert.Equal(t, content, store.bodies[0])
}

func TestUploadService_RejectsBeforeStorage(t *testing.T) {
	store := &fakeImageStore{}
	svc := NewUploadService(store, nil)

	_, err := svc.Upload(context.Background(), newFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF")))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Empty(t, store.keys)
}

func TestUploadService_StorageError(t *testing.T) {
	store := &fakeImageStore{putErr: errors.New("The bucket does not exist")}
	svc := NewUploadService(store, nil)

	_, err := svc.Upload(context.Background(), newFileHeader(t, "cover.webp", "image/webp", []byte("RIFF")))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
	assert.True(t, strings.Contains(apperrors.MessageOf(err), "bucket does not exist"))
}
