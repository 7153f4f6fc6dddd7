package repository

import (
	"context"
	"strings"

	"storefront-service/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormProductRepository implements ProductRepo on the PostgreSQL products table.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List applies every set filter with AND, newest first.
func (r *GormProductRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.Search != nil {
		// Wildcards in the term are matched literally.
		query = query.Where("title ILIKE ?", "%"+likeEscaper.Replace(*filter.Search)+"%")
	}
	if filter.Sale {
		query = query.Where("sale = ?", true)
	}
	if filter.Preorder {
		query = query.Where("preorder = ?", true)
	}

	products := []models.Product{}
	if err := query.Order("dateadded DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
