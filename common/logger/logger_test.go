package logger

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	var fromCtx string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromCtx = requestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, fromCtx)
}

func TestRequestIDReusesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDUnknownWithoutValue(t *testing.T) {
	assert.Equal(t, "unknown", requestID(context.Background()))
	assert.Equal(t, "r1", requestID(WithRequestID(context.Background(), "r1")))
}

func TestInitializeTeesToSink(t *testing.T) {
	var buf bytes.Buffer
	log, err := Initialize("production", &buf)
	require.NoError(t, err)

	log.Info("hello sink")
	_ = log.Sync()

	assert.Contains(t, buf.String(), `"msg":"hello sink"`)
}
