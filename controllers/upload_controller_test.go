package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	keys []string
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "http://localhost:4566/product-images/" + key
}

func newUploadRouter(svc UploadServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/upload/upload", NewUploadController(svc).Upload)
	return router
}

func imageRequest(t *testing.T, filename, contentType string, size int) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x42}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/upload/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUpload_WithRealService(t *testing.T) {
	store := &fakeStore{}
	router := newUploadRouter(services.NewUploadService(store, nil))

	t.Run("1 KiB PNG is stored", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, imageRequest(t, "cover.png", "image/png", 1024))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Regexp(t, `"fileName":"\d+-[0-9a-z]+\.png"`, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"url":"http://localhost:4566/product-images/`)
		assert.Len(t, store.keys, 1)
	})

	t.Run("6 MiB PNG is rejected", func(t *testing.T) {
		before := len(store.keys)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, imageRequest(t, "huge.png", "image/png", 6*1024*1024))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "File size must be less than 5MB", rec.Body.String())
		assert.Len(t, store.keys, before)
	})

	t.Run("PDF is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, imageRequest(t, "manual.pdf", "application/pdf", 100))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "File must be an image", rec.Body.String())
	})

	t.Run("Missing file", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("other", "x"))
		require.NoError(t, w.Close())
		req, _ := http.NewRequest(http.MethodPost, "/api/upload/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file provided", rec.Body.String())
	})

	t.Run("Urlencoded body has no file", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/upload/upload", strings.NewReader(url.Values{"a": {"b"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file provided", rec.Body.String())
	})

	t.Run("Unreadable body - 500", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/upload/upload", strings.NewReader("garbage"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=nope")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", rec.Body.String())
	})
}

func TestUpload_StorageError(t *testing.T) {
	svc := new(MockUploadService)
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, apperrors.Upstream(errors.New("Access Denied"))).Once()

	rec := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(rec, imageRequest(t, "cover.jpg", "image/jpeg", 10))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Access Denied", rec.Body.String())
}
