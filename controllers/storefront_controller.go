package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// StorefrontController serves the presentation view models. Failures are
// carried in the view's state, so every handler answers 200.
type StorefrontController struct {
	service StorefrontServiceAPI
}

func NewStorefrontController(service StorefrontServiceAPI) *StorefrontController {
	return &StorefrontController{service: service}
}

func (sc *StorefrontController) Grid(c *gin.Context) {
	c.JSON(http.StatusOK, sc.service.Grid(c.Request.Context(), services.GridQuery{
		Cat:      c.Query("cat"),
		Search:   c.Query("search"),
		Preorder: c.Query("preorder"),
	}))
}

func (sc *StorefrontController) Sale(c *gin.Context) {
	c.JSON(http.StatusOK, sc.service.Sale(c.Request.Context()))
}

func (sc *StorefrontController) Preorders(c *gin.Context) {
	c.JSON(http.StatusOK, sc.service.Preorders(c.Request.Context()))
}

func (sc *StorefrontController) PreorderList(c *gin.Context) {
	c.JSON(http.StatusOK, sc.service.PreorderList(c.Request.Context()))
}
