package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/container"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/profile", limiter, m.Handler.Me)
	rg.PUT("/profile", limiter, m.Handler.Update)
}
