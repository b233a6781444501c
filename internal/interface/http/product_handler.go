package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/infrastructure/postgres"
	"github.com/bakemart/backend/pkg/response"
	"github.com/bakemart/backend/pkg/validation"
)

// ProductHandler serves the public browse/detail/search endpoints and the
// baker listing mutations.
type ProductHandler struct {
	Products *application.ProductService
	Login    string
}

func NewProductHandler(products *application.ProductService, loginPath string) *ProductHandler {
	return &ProductHandler{Products: products, Login: loginPath}
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
}

func (r productRequest) input() application.ProductInput {
	return application.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context(), c.Query("category"))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, products, "products", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		handleGuarded(c, err, h.Login)
		return
	}
	resp := response.Success(c, http.StatusOK, p, "product", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	hits, err := h.Products.Search(c.Request.Context(), c.Query("q"), size)
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) ListOwn(c *gin.Context) {
	products, err := h.Products.ListOwn(c.Request.Context(), accessToken(c))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, products, "your products", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	p, err := h.Products.Create(c.Request.Context(), accessToken(c), req.input())
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusCreated, p, "product created", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	p, err := h.Products.Update(c.Request.Context(), accessToken(c), c.Param("id"), req.input())
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		handleGuarded(c, err, h.Login)
		return
	}
	resp := response.Success(c, http.StatusOK, p, "product updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.Products.Delete(c.Request.Context(), accessToken(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		handleGuarded(c, err, h.Login)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
	c.JSON(resp.Status, resp)
}

// UploadImage accepts a multipart "image" file and stores it on the listing.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer file.Close()

	url, err := h.Products.UploadImage(c.Request.Context(), accessToken(c), c.Param("id"), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		handleGuarded(c, err, h.Login)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil)
	c.JSON(resp.Status, resp)
}
