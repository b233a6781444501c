package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/pkg/response"
)

// AdminHandler serves the admin console: the baker roster and the
// approval/block toggles. Each toggle responds with the refreshed roster so
// the console never renders stale flags.
type AdminHandler struct {
	Admin *application.AdminService
	Login string
}

func NewAdminHandler(admin *application.AdminService, loginPath string) *AdminHandler {
	return &AdminHandler{Admin: admin, Login: loginPath}
}

func (h *AdminHandler) ListBakers(c *gin.Context) {
	bakers, err := h.Admin.ListBakers(c.Request.Context(), accessToken(c))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, bakers, "bakers", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) ToggleApproval(c *gin.Context) {
	bakers, err := h.Admin.ToggleApproval(c.Request.Context(), accessToken(c), c.Param("id"))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, bakers, "approval updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) ToggleBlocked(c *gin.Context) {
	bakers, err := h.Admin.ToggleBlocked(c.Request.Context(), accessToken(c), c.Param("id"))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, bakers, "block state updated", nil)
	c.JSON(resp.Status, resp)
}
