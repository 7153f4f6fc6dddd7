package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/models"
)

// ErrStoreNotConfigured is returned by every call on a product store that
// started without credentials.
var ErrStoreNotConfigured = errors.New("product store is not configured")

// ProductRepo is the product storage contract shared by the PostgreSQL and
// DynamoDB backends. List never returns a nil slice.
type ProductRepo interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// UserRepo looks up credentials for password sign-in.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionStore records issued refresh token ids.
type SessionStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
}

// UnconfiguredProductRepo stands in when no product store credentials exist.
type UnconfiguredProductRepo struct{}

func (UnconfiguredProductRepo) List(context.Context, models.CatalogFilter) ([]models.Product, error) {
	return nil, ErrStoreNotConfigured
}

func (UnconfiguredProductRepo) Create(context.Context, *models.Product) error {
	return ErrStoreNotConfigured
}

// UnavailableProductRepo stands in when credentials exist but the store could
// not be reached at startup. Every call fails with Err.
type UnavailableProductRepo struct {
	Err error
}

func (r UnavailableProductRepo) List(context.Context, models.CatalogFilter) ([]models.Product, error) {
	return nil, r.Err
}

func (r UnavailableProductRepo) Create(context.Context, *models.Product) error {
	return r.Err
}
