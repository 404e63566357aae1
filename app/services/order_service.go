package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// OrderService converts carts into orders and serves order history.
//
// Checkout is a two-step workflow with documented partial-failure behavior:
// the order is persisted first, then the cart is deleted. A failure between
// the two steps leaves both the order and a stale cart behind; nothing is
// rolled back.
type OrderService struct {
	orders   docstore.Collection
	carts    docstore.Collection
	products docstore.Collection
}

func NewOrderService(store docstore.Store) *OrderService {
	return &OrderService{
		orders:   store.Collection("orders"),
		carts:    store.Collection("carts"),
		products: store.Collection("products"),
	}
}

// Checkout materialises the user's cart into a Pending order and clears the
// cart. Items are copied verbatim (productId+quantity); prices are resolved
// at read time, not frozen here.
func (s *OrderService) Checkout(ctx context.Context, userID, address, paymentMethod string) (models.Order, error) {
	if address == "" || paymentMethod == "" {
		return models.Order{}, apperr.Validation("Address and payment method are required")
	}

	var cart models.Cart
	err := s.carts.Get(ctx, userID, &cart)
	if errors.Is(err, docstore.ErrNotFound) || (err == nil && len(cart.Items) == 0) {
		return models.Order{}, apperr.EmptyCart("Cart is empty")
	}
	if err != nil {
		return models.Order{}, apperr.Internal("Failed to fetch cart", err)
	}

	order := models.Order{
		UserID:        userID,
		Items:         cart.Items,
		Address:       address,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.orders.Add(ctx, order)
	if err != nil {
		return models.Order{}, apperr.Internal("Failed to place order", err)
	}
	order.ID = id

	if err := s.carts.Delete(ctx, userID); err != nil {
		// The order is already persisted; the stale cart is the accepted
		// partial-failure outcome.
		logger.WithCtx(ctx).Error("order persisted but cart not cleared",
			"order_id", id, "user_id", userID, "error", err)
		return models.Order{}, apperr.Internal("Failed to place order", err)
	}

	return order, nil
}

// GetOrders returns the user's order history with every item resolved to
// the product's current attributes. Items whose product has been deleted
// are omitted from the view.
func (s *OrderService) GetOrders(ctx context.Context, userID string) ([]models.OrderView, error) {
	var orders []models.Order
	err := s.orders.Find(ctx, []docstore.Filter{docstore.Eq("userId", userID)}, &orders)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch orders", err)
	}

	byID, err := s.resolveProducts(ctx, orders)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		view := models.OrderView{
			ID:            order.ID,
			UserID:        order.UserID,
			Items:         []models.Attrs{},
			Address:       order.Address,
			PaymentMethod: order.PaymentMethod,
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
		}
		for _, item := range order.Items {
			product, ok := byID[item.ProductID]
			if !ok {
				continue
			}
			entry := product.View()
			entry["quantity"] = item.Quantity
			view.Items = append(view.Items, entry)
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateStatus overwrites an order's status field only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" || status == "" {
		return apperr.Validation("Order ID and status are required")
	}

	err := s.orders.Update(ctx, orderID, map[string]interface{}{"status": status})
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("Order not found")
	}
	if err != nil {
		return apperr.Internal("Failed to update order status", err)
	}
	return nil
}

// resolveProducts batches all product ids across the orders into one
// multi-get instead of a lookup per item.
func (s *OrderService) resolveProducts(ctx context.Context, orders []models.Order) (map[string]models.Product, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]models.Product{}, nil
	}

	var products []models.Product
	if err := s.products.GetMulti(ctx, ids, &products); err != nil {
		return nil, apperr.Internal("Failed to fetch order products", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
