package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/pkg/response"
	"github.com/bakemart/backend/pkg/validation"
)

type ProfileHandler struct {
	Profiles *application.ProfileService
	Login    string
}

func NewProfileHandler(profiles *application.ProfileService, loginPath string) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Login: loginPath}
}

type updateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,fullname"`
	Phone    string `json:"phone" binding:"required,phone"`
}

func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.Profiles.Current(c.Request.Context(), accessToken(c))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, p, "profile", nil)
	c.JSON(resp.Status, resp)
}

// Update edits the caller's own full name and phone. The identity always
// comes from the live session, never from the payload.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	p, err := h.Profiles.UpdateProfile(c.Request.Context(), accessToken(c), req.FullName, req.Phone)
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, p, "Profile updated successfully", nil)
	c.JSON(resp.Status, resp)
}
