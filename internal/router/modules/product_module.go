package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/container"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/interface/middleware"
)

// ProductModule registers the public browse/search endpoints and the baker
// listing management endpoints.
type ProductModule struct {
	Handler *handlers.ProductHandler
}

func NewProductModule(h *handlers.ProductHandler) *ProductModule {
	return &ProductModule{Handler: h}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/search", browseLimiter, m.Handler.Search)
	rg.GET("/products/:id", browseLimiter, m.Handler.Get)

	baker := rg.Group("/baker")
	baker.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil))
	{
		baker.GET("/products", m.Handler.ListOwn)
		baker.POST("/products", m.Handler.Create)
		baker.PUT("/products/:id", m.Handler.Update)
		baker.DELETE("/products/:id", m.Handler.Delete)
		baker.POST("/products/:id/image", m.Handler.UploadImage)
	}
}
