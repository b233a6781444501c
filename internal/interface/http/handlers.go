package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/pkg/response"
)

// accessToken reads the access token cookie; empty when absent.
func accessToken(c *gin.Context) string {
	token, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return token
}

// handleGuarded maps service failures shared by every guarded endpoint. A
// guard rejection becomes a silent redirect to the login route, never an
// error payload. It reports whether the error was consumed.
func handleGuarded(c *gin.Context, err error, loginPath string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, application.ErrLoginRequired):
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
	case errors.Is(err, application.ErrInvalidInput):
		resp := response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, application.ErrForbidden):
		resp := response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, application.ErrProfileNotFound):
		resp := response.Error[any](c, http.StatusNotFound, "not found", nil)
		c.JSON(resp.Status, resp)
	default:
		resp := response.Error[any](c, http.StatusInternalServerError, "An unexpected error occurred", nil)
		c.JSON(resp.Status, resp)
	}
	return true
}
