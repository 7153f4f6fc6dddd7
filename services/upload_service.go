package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	awspkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

const (
	msgNoFile   = "No file provided"
	msgNotImage = "File must be an image"
	msgTooLarge = "File size must be less than 5MB"
)

type UploadService struct {
	store   ImageStore
	metrics MetricsRecorder
	now     func() time.Time
}

func NewUploadService(store ImageStore, metrics MetricsRecorder) *UploadService {
	return &UploadService{store: store, metrics: metrics, now: time.Now}
}

// ValidateImage checks presence, media type and size, in that order.
func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return apperrors.Validation(msgNoFile)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return apperrors.Validation(msgNotImage)
	}
	if file.Size > MaxImageSize {
		return apperrors.Validation(msgTooLarge)
	}
	return nil
}

// FileExtension returns the text after the last dot, or the whole name when
// there is none.
func FileExtension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// GenerateFileName builds "<unix-millis>-<base36 token>.<ext>".
func GenerateFileName(original string, now time.Time) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate file token: %w", err)
	}
	token := strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), token, FileExtension(original)), nil
}

// Upload validates file and stores it under a generated name.
func (s *UploadService) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if err := ValidateImage(file); err != nil {
		return nil, err
	}

	name, err := GenerateFileName(file.Filename, s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	f, err := file.Open()
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	if err := s.store.Put(ctx, name, f, file.Size, file.Header.Get("Content-Type")); err != nil {
		logger.FromContext(ctx).Error("image upload failed", zap.String("key", name), zap.Error(err))
		return nil, apperrors.Upstream(err)
	}

	recordAsync(s.metrics, awspkg.MetricImagesUploaded, nil)
	return &UploadResult{URL: s.store.PublicURL(name), FileName: name}, nil
}
