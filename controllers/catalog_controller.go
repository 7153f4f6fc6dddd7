package controllers

import (
	"errors"
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	service CatalogServiceAPI
}

func NewCatalogController(service CatalogServiceAPI) *CatalogController {
	return &CatalogController{service: service}
}

// FetchProducts handles GET /api/fetch/products with the platform, search,
// sale and preorder filters.
func (cc *CatalogController) FetchProducts(c *gin.Context) {
	filter := services.ParseCatalogFilter(c.Request.URL.Query())

	products, err := cc.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database query failed",
			"details": apperrors.MessageOf(err),
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListProducts handles the unfiltered GET /api/products. Query parameters
// are ignored.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, err := cc.service.List(c.Request.Context(), models.CatalogFilter{})
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Database configuration error",
				"details": "Missing database environment variables",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database query failed",
			"details": apperrors.MessageOf(err),
		})
		return
	}
	c.JSON(http.StatusOK, products)
}
