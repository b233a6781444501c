package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/container"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/interface/middleware"
)

type OrderModule struct {
	Handler *handlers.OrderHandler
}

func NewOrderModule(h *handlers.OrderHandler) *OrderModule {
	return &OrderModule{Handler: h}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/orders", limiter, m.Handler.Place)
	rg.GET("/orders", limiter, m.Handler.List)
	rg.POST("/ratings", limiter, m.Handler.Rate)
}
