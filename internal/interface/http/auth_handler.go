package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/session"
	"github.com/bakemart/backend/pkg/helpers"
	"github.com/bakemart/backend/pkg/response"
	"github.com/bakemart/backend/pkg/validation"
)

// AuthHandler exposes login, logout, refresh, registration, and the current
// session. Post-login navigation comes back as a destination field computed
// by the auth controller, never decided here.
type AuthHandler struct {
	Auth     *application.AuthController
	Register *application.RegisterService
	Store    session.Store
	Logger   *logrus.Logger
	Cookies  *helpers.CookieManager
}

func NewAuthHandler(auth *application.AuthController, register *application.RegisterService, store session.Store, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Auth:     auth,
		Register: register,
		Store:    store,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name" binding:"required,fullname"`
	Phone    string `json:"phone"`
}

type bakerRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name" binding:"required,fullname"`
	Phone    string `json:"phone" binding:"required,phone"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	dest, pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		msg := h.Auth.Err()
		if errors.Is(err, application.ErrProfileUnavailable) {
			status = http.StatusInternalServerError
			msg = err.Error()
		}
		resp := response.Error[any](c, status, msg, nil)
		c.JSON(resp.Status, resp)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success(c, http.StatusOK, gin.H{"destination": dest}, "login successful",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	_, pair, err := h.Store.Refresh(c.Request.Context(), refresh)
	if err != nil {
		// Defensive clear: an expired refresh token must not leave stale
		// cookies behind.
		h.Cookies.Clear(c)
		resp := response.Error[any](c, http.StatusUnauthorized, "Your session has expired. Please log in again.", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	resp := response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Sign-out runs even when the token is stale or unparseable: the
	// SIGNED_OUT broadcast and the session cleanup are idempotent, and an
	// explicit logout must never be a no-op.
	subjectID := ""
	if sess, err := h.Store.Current(c.Request.Context(), accessToken(c)); err == nil && sess != nil {
		subjectID = sess.SubjectID
	}
	_ = h.Store.SignOut(c.Request.Context(), subjectID)
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}

// Session reports the caller's live session, clearing stale cookies via the
// controller's sign-out safety net when the token no longer resolves.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, err := h.Auth.EnsureSession(c.Request.Context(), accessToken(c))
	if err != nil {
		resp := response.Error[any](c, http.StatusInternalServerError, "session lookup failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if sess == nil {
		h.Cookies.Clear(c)
		resp := response.Success[any](c, http.StatusOK, gin.H{"authenticated": false}, "no session", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"authenticated": true,
		"subject_id":    sess.SubjectID,
		"email":         sess.Email,
	}, "session", nil)
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) RegisterBuyer(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	p, err := h.Register.RegisterBuyer(c.Request.Context(), application.RegisterInput{
		Email: req.Email, Password: req.Password, FullName: req.FullName, Phone: req.Phone,
	})
	if err != nil {
		h.registerError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, gin.H{"id": p.ID, "email": p.Email, "role": p.Role}, "registration successful", nil)
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) RegisterBaker(c *gin.Context) {
	var req bakerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	p, err := h.Register.RegisterBaker(c.Request.Context(), application.RegisterInput{
		Email: req.Email, Password: req.Password, FullName: req.FullName, Phone: req.Phone,
	})
	if err != nil {
		h.registerError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, gin.H{"id": p.ID, "email": p.Email, "role": p.Role}, "registration successful", nil)
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) registerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		resp := response.Error[any](c, http.StatusConflict, "This email is already registered. Please try logging in instead.", nil)
		c.JSON(resp.Status, resp)
	case errors.Is(err, application.ErrInvalidInput):
		resp := response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		c.JSON(resp.Status, resp)
	default:
		resp := response.Error[any](c, http.StatusInternalServerError, "An error occurred during registration", nil)
		c.JSON(resp.Status, resp)
	}
}
