package controllers

import (
	"context"
	"mime/multipart"

	"storefront-service/models"
	"storefront-service/services"
)

// Form and upload limits.
const (
	// MaxUploadBodySize caps the multipart body so oversize images are
	// still read far enough to be rejected with a size message.
	MaxUploadBodySize = 64 << 20
)

// CatalogServiceAPI defines the catalog query operations.
type CatalogServiceAPI interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error)
}

// IngestServiceAPI persists dashboard submissions.
type IngestServiceAPI interface {
	Create(ctx context.Context, form models.ProductForm) (*models.Product, error)
}

// UploadServiceAPI validates and stores product images.
type UploadServiceAPI interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*services.UploadResult, error)
}

// StorefrontServiceAPI builds the storefront view models.
type StorefrontServiceAPI interface {
	Grid(ctx context.Context, q services.GridQuery) services.GridView
	Sale(ctx context.Context) services.GridView
	Preorders(ctx context.Context) services.GridView
	PreorderList(ctx context.Context) services.PreorderListView
}
