package handlers

import (
	"fmt"
	"net/http"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/middleware"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder serves POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewParamError("invalid order body", err))
		return
	}

	id, err := h.orderService.CreateOrder(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"order_id": id})
}

// ListUserOrders serves GET /user/orders?role=. Any role other than landlord lists the caller's own bookings.
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	role := models.RoleRenter
	if models.Role(c.Query("role")) == models.RoleLandlord {
		role = models.RoleLandlord
	}

	orders, err := h.orderService.ListUserOrders(c.Request.Context(), middleware.ActorID(c), role)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": orders})
}

// UpdateStatus serves PUT /orders/:order_id/status with an accept or reject action.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.OrderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewParamError("invalid status body", err))
		return
	}
	if req.Action != models.ActionAccept && req.Action != models.ActionReject {
		c.Error(apperrors.NewParamError(fmt.Sprintf("unsupported status action %q", req.Action), nil))
		return
	}
	h.applyAction(c, req)
}

// Comment serves PUT /orders/:order_id/comment
func (h *OrderHandler) Comment(c *gin.Context) {
	var body struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.NewParamError("invalid comment body", err))
		return
	}
	h.applyAction(c, models.OrderActionRequest{Action: models.ActionComment, Comment: body.Comment})
}

func (h *OrderHandler) applyAction(c *gin.Context, req models.OrderActionRequest) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		c.Error(apperrors.NewParamError(fmt.Sprintf("invalid order id %q", c.Param("order_id")), nil))
		return
	}

	status, err := h.orderService.ApplyAction(c.Request.Context(), middleware.ActorID(c), orderID, req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, gin.H{"order_id": orderID, "status": status})
}
