package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// CartController serves the caller's own cart. All routes sit behind
// RequireAuth; the cart document id is always the verified uid.
type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

type cartAddRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

type cartRemoveRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  *float64 `json:"quantity"`
}

// Add handles POST /cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.Error(w, http.StatusBadRequest, validationMessage(errs))
		return
	}

	cart, err := c.carts.AddItem(r.Context(), callerUID(r), req.ProductID, req.Quantity)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// Get handles GET /cart. An absent cart reads as {"items": []}.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.carts.Get(r.Context(), callerUID(r))
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, view)
}

// Remove handles DELETE /cart. Quantity defaults to 1 when omitted.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	var req cartRemoveRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.Error(w, http.StatusBadRequest, validationMessage(errs))
		return
	}

	quantity := 1.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := c.carts.RemoveItem(r.Context(), callerUID(r), req.ProductID, quantity)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Product removed from cart",
		"cart":    cart,
	})
}

// Clear handles DELETE /cart/clear. Clearing an absent cart still succeeds.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.carts.Clear(r.Context(), callerUID(r)); err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Cart cleared",
	})
}
