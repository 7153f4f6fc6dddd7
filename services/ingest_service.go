package services

import (
	"context"
	"encoding/json"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventProductCreated is published after every successful insert.
const EventProductCreated = "product.created"

// ProductCreatedEvent is the SNS message body for EventProductCreated.
type ProductCreatedEvent struct {
	Event      string         `json:"event"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type IngestService struct {
	repo      repository.ProductRepo
	metrics   MetricsRecorder
	publisher EventPublisher
	topicArn  string
}

// NewIngestService wires the product store. publisher may be nil, and an
// empty topicArn disables publishing.
func NewIngestService(repo repository.ProductRepo, metrics MetricsRecorder, publisher EventPublisher, topicArn string) *IngestService {
	return &IngestService{repo: repo, metrics: metrics, publisher: publisher, topicArn: topicArn}
}

// Create persists the form as a new product. The store's error message is
// preserved for the caller.
func (s *IngestService) Create(ctx context.Context, form models.ProductForm) (*models.Product, error) {
	log := logger.FromContext(ctx)

	product := form.ToProduct()
	product.ID = uuid.New()

	if err := s.repo.Create(ctx, product); err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, apperrors.Upstream(err)
	}

	log.Info("product created", zap.String("id", product.ID.String()))
	recordAsync(s.metrics, awspkg.MetricProductsCreated, nil)
	s.publishCreated(ctx, product)
	return product, nil
}

func (s *IngestService) publishCreated(ctx context.Context, product *models.Product) {
	if s.publisher == nil || s.topicArn == "" {
		return
	}
	body, err := json.Marshal(ProductCreatedEvent{
		Event:      EventProductCreated,
		Product:    *product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("failed to encode product event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, s.topicArn, EventProductCreated, body); err != nil {
		logger.FromContext(ctx).Warn("failed to publish product event", zap.String("id", product.ID.String()), zap.Error(err))
	}
}
