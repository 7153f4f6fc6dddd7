package routes

import (
	"net/http"

	"storefront-service/common/middleware"
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the router serves.
type Controllers struct {
	Catalog    *controllers.CatalogController
	Ingest     *controllers.IngestController
	Upload     *controllers.UploadController
	Auth       *controllers.AuthController
	Storefront *controllers.StorefrontController
}

// RegisterRoutes mounts the API. Only the upload group is rate limited;
// uploadLimiter may be nil to disable it.
func RegisterRoutes(r *gin.Engine, c Controllers, uploadLimiter *middleware.RateLimiter) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", c.Catalog.ListProducts)
		api.GET("/fetch/products", c.Catalog.FetchProducts)
		api.POST("/insert/insert", c.Ingest.Insert)
		api.POST("/auth/signin", c.Auth.SignIn)
	}

	upload := api.Group("/upload")
	if uploadLimiter != nil {
		upload.Use(middleware.RateLimit(uploadLimiter))
	}
	upload.POST("/upload", c.Upload.Upload)

	storefront := api.Group("/storefront")
	{
		storefront.GET("/grid", c.Storefront.Grid)
		storefront.GET("/sale", c.Storefront.Sale)
		storefront.GET("/preorders", c.Storefront.Preorders)
		storefront.GET("/preorders/list", c.Storefront.PreorderList)
	}
}
