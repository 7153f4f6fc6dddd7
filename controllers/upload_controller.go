package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "storefront-service/common/errors"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	service UploadServiceAPI
}

func NewUploadController(service UploadServiceAPI) *UploadController {
	return &UploadController{service: service}
}

// Upload handles POST /api/upload/upload with the image in the "image" field.
func (uc *UploadController) Upload(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBodySize)
	}

	file, err := uc.formFile(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusBadRequest, "File size must be less than 5MB")
			return
		}
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	res, err := uc.service.Upload(c.Request.Context(), file)
	if err != nil {
		_ = c.Error(err)
		c.String(apperrors.StatusOf(err), apperrors.MessageOf(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      res.URL,
		"fileName": res.FileName,
	})
}

// formFile returns a nil header, not an error, when the form simply has no
// image.
func (uc *UploadController) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		return file, nil
	case errors.Is(err, http.ErrMissingFile):
		return nil, nil
	case errors.Is(err, http.ErrNotMultipart) &&
		strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded"):
		return nil, nil
	default:
		return nil, err
	}
}
