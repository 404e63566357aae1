package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// OrderController serves checkout and order history.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type checkoutRequest struct {
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type statusUpdateRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// Checkout handles POST /orders/checkout.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.Error(w, http.StatusBadRequest, validationMessage(errs))
		return
	}

	order, err := c.orders.Checkout(r.Context(), callerUID(r), req.Address, req.PaymentMethod)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Order placed",
		"orderId": order.ID,
		"order":   order,
	})
}

// List handles GET /orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	views, err := c.orders.GetOrders(r.Context(), callerUID(r))
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"orders": views,
	})
}

// UpdateStatus handles PUT /orders/update-status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.Error(w, http.StatusBadRequest, validationMessage(errs))
		return
	}

	if err := c.orders.UpdateStatus(r.Context(), req.OrderID, req.Status); err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Order status updated",
	})
}
