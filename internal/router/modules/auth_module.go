package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/container"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/interface/middleware"
)

// AuthModule wires the credential endpoints. There is no route-level auth
// middleware: session checks happen inside the application layer at call
// time, so a sign-out between page load and click is still caught.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/session", m.Handler.Session)
	rg.POST("/register", registerLimiter, m.Handler.RegisterBuyer)
	rg.POST("/baker/register", registerLimiter, m.Handler.RegisterBaker)
}
