package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/container"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/interface/middleware"
)

// AdminModule registers the admin console endpoints. Role enforcement lives
// in the admin service; the router only throttles.
type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil))
	{
		admin.GET("/bakers", m.Handler.ListBakers)
		admin.POST("/bakers/:id/approval", m.Handler.ToggleApproval)
		admin.POST("/users/:id/block", m.Handler.ToggleBlocked)
	}
}
