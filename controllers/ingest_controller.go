package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type IngestController struct {
	service IngestServiceAPI
}

func NewIngestController(service IngestServiceAPI) *IngestController {
	return &IngestController{service: service}
}

// Insert handles the dashboard's product form. Errors are plain text.
func (ic *IngestController) Insert(c *gin.Context) {
	form, err := services.ParseProductForm(c.GetPostForm)
	if err != nil {
		c.String(apperrors.StatusOf(err), apperrors.MessageOf(err))
		return
	}

	if _, err := ic.service.Create(c.Request.Context(), form); err != nil {
		_ = c.Error(err)
		c.String(apperrors.StatusOf(err), apperrors.MessageOf(err))
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
