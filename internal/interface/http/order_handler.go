package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/pkg/response"
	"github.com/bakemart/backend/pkg/validation"
)

type OrderHandler struct {
	Orders  *application.OrderService
	Ratings *application.RatingService
	Login   string
}

func NewOrderHandler(orders *application.OrderService, ratings *application.RatingService, loginPath string) *OrderHandler {
	return &OrderHandler{Orders: orders, Ratings: ratings, Login: loginPath}
}

type placeOrderRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type submitRatingRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Score     int    `json:"score" binding:"required,gte=1,lte=5"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	dest, err := h.Orders.PlaceOrder(c.Request.Context(), accessToken(c), req.ProductID, req.Quantity)
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusCreated, gin.H{"destination": dest}, "Order placed successfully", nil)
	c.JSON(resp.Status, resp)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), accessToken(c))
	if handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success(c, http.StatusOK, orders, "your orders", nil)
	c.JSON(resp.Status, resp)
}

func (h *OrderHandler) Rate(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	if err := h.Ratings.SubmitRating(c.Request.Context(), accessToken(c), req.ProductID, req.Score); handleGuarded(c, err, h.Login) {
		return
	}
	resp := response.Success[any](c, http.StatusCreated, gin.H{"rated": true}, "Rating submitted", nil)
	c.JSON(resp.Status, resp)
}
