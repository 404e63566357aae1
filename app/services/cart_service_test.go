package services_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

func seedProduct(t *testing.T, store docstore.Store, attrs models.Attrs) string {
	t.Helper()
	id, err := store.Collection("products").Add(context.Background(), attrs)
	require.NoError(t, err)
	return id
}

func TestAddItemMergesUpToStock(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	pid := seedProduct(t, store, models.Attrs{"name": "Saree", "price": 4999.0, "stock": 10.0})

	cart, err := svc.AddItem(ctx, "u1", pid, 4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.AddItem(ctx, "u1", pid, 4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 8.0, cart.Items[0].Quantity)

	// 8 + 4 would exceed the stock of 10.
	_, err = svc.AddItem(ctx, "u1", pid, 4)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInsufficientStock, apperr.CodeOf(err))

	// The failed add must not have touched the stored cart.
	var stored models.Cart
	require.NoError(t, store.Collection("carts").Get(ctx, "u1", &stored))
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 8.0, stored.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := services.NewCartService(docstore.NewMemory())

	_, err := svc.AddItem(context.Background(), "u1", "missing", 1)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	store := docstore.NewMemory()
	svc := services.NewCartService(store)
	pid := seedProduct(t, store, models.Attrs{"stock": 5.0})

	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := svc.AddItem(context.Background(), "u1", pid, q)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
	}
}

func TestAddItemZeroStockWhenAttrMissing(t *testing.T) {
	store := docstore.NewMemory()
	svc := services.NewCartService(store)
	pid := seedProduct(t, store, models.Attrs{"name": "Dupatta"})

	_, err := svc.AddItem(context.Background(), "u1", pid, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInsufficientStock, apperr.CodeOf(err))
}

func TestGetAbsentCartReadsEmpty(t *testing.T) {
	svc := services.NewCartService(docstore.NewMemory())

	view, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}

func TestGetEnrichesAndSelfHeals(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	kept := seedProduct(t, store, models.Attrs{"name": "Kurta", "price": 1299.0, "stock": 40.0})
	gone := seedProduct(t, store, models.Attrs{"name": "Lehenga", "price": 8499.0, "stock": 5.0})

	_, err := svc.AddItem(ctx, "u1", kept, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", gone, 1)
	require.NoError(t, err)

	// Product deleted after it was carted: the read drops the entry.
	require.NoError(t, store.Collection("products").Delete(ctx, gone))

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, kept, view.Items[0]["id"])
	assert.Equal(t, "Kurta", view.Items[0]["name"])
	assert.Equal(t, 2.0, view.Items[0]["quantity"])
}

func TestGetDropsCorruptQuantities(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	pid := seedProduct(t, store, models.Attrs{"name": "Saree", "stock": 10.0})

	// Write a cart with a corrupt entry directly, bypassing the service.
	err := store.Collection("carts").Set(ctx, "u1", models.Cart{Items: []models.CartItem{
		{ProductID: pid, Quantity: -3},
		{ProductID: pid, Quantity: 2},
	}})
	require.NoError(t, err)

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2.0, view.Items[0]["quantity"])
}

func TestRemoveItemDecrementsAndSplices(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	pid := seedProduct(t, store, models.Attrs{"stock": 10.0})
	_, err := svc.AddItem(ctx, "u1", pid, 3)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "u1", pid, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2.0, cart.Items[0].Quantity)

	// Removing more than remains clears the entry entirely.
	cart, err = svc.RemoveItem(ctx, "u1", pid, 5)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItemErrors(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	_, err := svc.RemoveItem(ctx, "u1", "p1", 1)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err)) // no cart at all

	pid := seedProduct(t, store, models.Attrs{"stock": 10.0})
	_, err = svc.AddItem(ctx, "u1", pid, 1)
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, "u1", "other", 1)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err)) // not in cart
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := services.NewCartService(store)

	pid := seedProduct(t, store, models.Attrs{"stock": 10.0})
	_, err := svc.AddItem(ctx, "u1", pid, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))
	require.NoError(t, svc.Clear(ctx, "u1")) // already gone

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
