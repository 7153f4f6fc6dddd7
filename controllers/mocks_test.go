package controllers

import (
	"context"
	"mime/multipart"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockIngestService struct{ mock.Mock }

func (m *MockIngestService) Create(ctx context.Context, form models.ProductForm) (*models.Product, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type MockUploadService struct{ mock.Mock }

func (m *MockUploadService) Upload(ctx context.Context, file *multipart.FileHeader) (*services.UploadResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadResult), args.Error(1)
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type MockStorefrontService struct{ mock.Mock }

func (m *MockStorefrontService) Grid(ctx context.Context, q services.GridQuery) services.GridView {
	return m.Called(ctx, q).Get(0).(services.GridView)
}

func (m *MockStorefrontService) Sale(ctx context.Context) services.GridView {
	return m.Called(ctx).Get(0).(services.GridView)
}

func (m *MockStorefrontService) Preorders(ctx context.Context) services.GridView {
	return m.Called(ctx).Get(0).(services.GridView)
}

func (m *MockStorefrontService) PreorderList(ctx context.Context) services.PreorderListView {
	return m.Called(ctx).Get(0).(services.PreorderListView)
}

func strp(s string) *string { return &s }
