package services

import (
	"context"
	"net/url"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// ParseCatalogFilter reads platform, search, sale and preorder from query
// parameters. Empty strings are treated as absent and only the literal
// "true" turns on a flag.
func ParseCatalogFilter(values url.Values) models.CatalogFilter {
	var f models.CatalogFilter
	if v := values.Get("platform"); v != "" {
		f.Platform = &v
	}
	if v := values.Get("search"); v != "" {
		f.Search = &v
	}
	f.Sale = values.Get("sale") == "true"
	f.Preorder = values.Get("preorder") == "true"
	return f
}

type CatalogService struct {
	repo    repository.ProductRepo
	metrics MetricsRecorder
}

func NewCatalogService(repo repository.ProductRepo, metrics MetricsRecorder) *CatalogService {
	return &CatalogService{repo: repo, metrics: metrics}
}

// List returns the matching products newest first. An empty result is a
// non-nil empty slice; a store failure is an *apperrors.Error with the store's
// message.
func (s *CatalogService) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("catalog query failed", zap.Error(err))
		return nil, apperrors.Upstream(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	recordAsync(s.metrics, awspkg.MetricCatalogQueries, nil)
	return products, nil
}
