package services

import (
	"context"
	"errors"
	"math"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

// CartService maintains the per-user cart document. Stock is validated at
// mutation time only; there is no reservation, and concurrent mutations of
// the same cart are last-write-wins on the whole document.
type CartService struct {
	carts    docstore.Collection
	products docstore.Collection
}

func NewCartService(store docstore.Store) *CartService {
	return &CartService{
		carts:    store.Collection("carts"),
		products: store.Collection("products"),
	}
}

// AddItem merges quantity of productID into the user's cart, creating the
// cart lazily on first add. The prospective total (existing + requested)
// must not exceed the product's current stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity float64) (models.Cart, error) {
	if productID == "" || !validQuantity(quantity) {
		return models.Cart{}, apperr.Validation("Invalid product or quantity")
	}

	var product models.Product
	err := s.products.Get(ctx, productID, &product)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Cart{}, apperr.NotFound("Product not found")
	}
	if err != nil {
		return models.Cart{}, apperr.Internal("Failed to fetch product", err)
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	idx := collection.FirstIndex(cart.Items, func(item models.CartItem) bool {
		return item.ProductID == productID
	})

	existing := 0.0
	if idx >= 0 {
		existing = cart.Items[idx].Quantity
	}
	if existing+quantity > product.Stock() {
		return models.Cart{}, apperr.InsufficientStock("Insufficient stock")
	}

	if idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.persist(ctx, userID, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Get returns the enriched cart view. The read self-heals: entries with a
// non-positive or non-finite quantity, and entries whose product no longer
// exists, are silently dropped. An absent cart reads as {items: []}.
func (s *CartService) Get(ctx context.Context, userID string) (models.CartView, error) {
	view := models.CartView{Items: []models.Attrs{}}

	var cart models.Cart
	err := s.carts.Get(ctx, userID, &cart)
	if errors.Is(err, docstore.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return view, apperr.Internal("Failed to fetch cart", err)
	}

	valid := collection.Filter(cart.Items, models.CartItem.Valid)
	if len(valid) == 0 {
		return view, nil
	}

	byID, err := s.productsByID(ctx, valid)
	if err != nil {
		return view, err
	}

	for _, item := range valid {
		product, ok := byID[item.ProductID]
		if !ok {
			continue // product deleted since it was added
		}
		entry := product.View()
		entry["quantity"] = item.Quantity
		view.Items = append(view.Items, entry)
	}
	return view, nil
}

// RemoveItem decrements the matching entry by quantity and removes it
// entirely when the result drops to zero or below.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string, quantity float64) (models.Cart, error) {
	if productID == "" || !validQuantity(quantity) {
		return models.Cart{}, apperr.Validation("Invalid product or quantity")
	}

	var cart models.Cart
	err := s.carts.Get(ctx, userID, &cart)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Cart{}, apperr.NotFound("Cart not found")
	}
	if err != nil {
		return models.Cart{}, apperr.Internal("Failed to fetch cart", err)
	}

	idx := collection.FirstIndex(cart.Items, func(item models.CartItem) bool {
		return item.ProductID == productID
	})
	if idx < 0 {
		return models.Cart{}, apperr.NotFound("Product not found in cart")
	}

	cart.Items[idx].Quantity -= quantity
	if cart.Items[idx].Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	if err := s.persist(ctx, userID, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Clear deletes the cart document. Clearing an absent cart is a no-op.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Delete(ctx, userID); err != nil {
		return apperr.Internal("Failed to clear cart", err)
	}
	return nil
}

func (s *CartService) load(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := s.carts.Get(ctx, userID, &cart)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Cart{ID: userID}, nil
	}
	if err != nil {
		return models.Cart{}, apperr.Internal("Failed to fetch cart", err)
	}
	return cart, nil
}

// persist writes only the items field, leaving any other cart fields intact.
func (s *CartService) persist(ctx context.Context, userID string, cart models.Cart) error {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	if err := s.carts.Merge(ctx, userID, map[string]interface{}{"items": items}); err != nil {
		return apperr.Internal("Failed to save cart", err)
	}
	return nil
}

// productsByID batch-fetches all products referenced by items into a map.
func (s *CartService) productsByID(ctx context.Context, items []models.CartItem) (map[string]models.Product, error) {
	ids := collection.Map(items, func(item models.CartItem) string { return item.ProductID })

	var products []models.Product
	if err := s.products.GetMulti(ctx, ids, &products); err != nil {
		return nil, apperr.Internal("Failed to fetch cart products", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
