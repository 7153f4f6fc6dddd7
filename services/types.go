package services

import (
	"context"
	"io"
	"time"

	"storefront-service/models"

	"go.uber.org/zap"
)

// MetricsRecorder is the subset of the CloudWatch client services emit to.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// EventPublisher publishes domain events, e.g. to SNS.
type EventPublisher interface {
	Publish(ctx context.Context, topicArn, eventType string, message []byte) error
}

// ImageStore is where uploaded images land.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// ProductLister is satisfied by CatalogService.
type ProductLister interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error)
}

// IdentityProvider exchanges credentials for a session.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
}

// UploadResult is returned to the dashboard after a successful upload.
type UploadResult struct {
	URL      string
	FileName string
}

// recordAsync sends a count in the background with its own deadline.
func recordAsync(m MetricsRecorder, metricName string, dimensions map[string]string) {
	if m == nil || !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.RecordCount(ctx, metricName, dimensions); err != nil {
			zap.L().Warn("failed to record metric", zap.String("metric", metricName), zap.Error(err))
		}
	}()
}
