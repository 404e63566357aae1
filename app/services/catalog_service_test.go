package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

func newCatalog(t *testing.T) (*services.CatalogService, docstore.Store) {
	t.Helper()
	store := docstore.NewMemory()
	svc := services.NewCatalogService(store, rolesFor(t, store))
	return svc, store
}

// rolesFor builds a claim store (no Redis, users-collection fallback) with
// one admin account registered.
func rolesFor(t *testing.T, store docstore.Store) identity.RoleProvider {
	t.Helper()
	users := store.Collection("users")
	err := users.Set(context.Background(), "admin1", models.User{Name: "Admin", Role: identity.RoleAdmin})
	require.NoError(t, err)
	return identity.NewClaimStore(nil, users)
}

var (
	asAdmin  = identity.Identity{UID: "admin1"}
	asUser   = identity.Identity{UID: "shopper"}
	asNobody = identity.Identity{}
)

func TestAddCleansAndLowercasesCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	product, err := svc.Add(ctx, asAdmin, models.Attrs{
		"name":        "Banarasi Saree",
		"category":    "Sarees",
		"price":       4999.0,
		"stock":       12.0,
		"description": "   ", // whitespace-only, dropped
		"material":    nil,   // absent, dropped
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)

	assert.Equal(t, "sarees", product.Attrs["category"])
	assert.NotContains(t, product.Attrs, "description")
	assert.NotContains(t, product.Attrs, "material")

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banarasi Saree", got.Attrs["name"])
}

func TestAddRejectsEmptyPayload(t *testing.T) {
	svc, _ := newCatalog(t)

	_, err := svc.Add(context.Background(), asAdmin, models.Attrs{"note": "  ", "x": nil})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestMutationsRequireAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	attrs := models.Attrs{"name": "Kurta"}

	_, err := svc.Add(ctx, asUser, attrs)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
	_, err = svc.Edit(ctx, asUser, "p1", attrs)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
	err = svc.Delete(ctx, asUser, "p1")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	// No verified identity at all: rejected before any role lookup.
	_, err = svc.Add(ctx, asNobody, attrs)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestListCategoryCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	_, err := svc.Add(ctx, asAdmin, models.Attrs{"name": "Saree", "category": "Sarees", "price": 4999.0})
	require.NoError(t, err)
	_, err = svc.Add(ctx, asAdmin, models.Attrs{"name": "Kurta", "category": "kurtas", "price": 1299.0})
	require.NoError(t, err)

	for _, query := range []string{"sarees", "SAREES", "Sarees"} {
		products, err := svc.List(ctx, services.ListFilter{Category: query})
		require.NoError(t, err)
		require.Len(t, products, 1, "query %q", query)
		assert.Equal(t, "Saree", products[0].Attrs["name"])
	}
}

func TestListPriceRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	for name, price := range map[string]float64{"cheap": 500, "mid": 1500, "dear": 9000} {
		_, err := svc.Add(ctx, asAdmin, models.Attrs{"name": name, "category": "sarees", "price": price})
		require.NoError(t, err)
	}

	min, max := 1000.0, 5000.0
	products, err := svc.List(ctx, services.ListFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "mid", products[0].Attrs["name"])
}

func TestListNoMatchesIsEmptyNotError(t *testing.T) {
	svc, _ := newCatalog(t)

	products, err := svc.List(context.Background(), services.ListFilter{Category: "nonexistent"})
	require.NoError(t, err)
	require.NotNil(t, products)
	assert.Empty(t, products)
}

func TestEditUpdatesExistingProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	product, err := svc.Add(ctx, asAdmin, models.Attrs{"name": "Saree", "price": 4999.0})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, asAdmin, product.ID, models.Attrs{"price": 4499.0})
	require.NoError(t, err)

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	price, ok := got.Attrs.Number("price")
	require.True(t, ok)
	assert.Equal(t, 4499.0, price)
	assert.Equal(t, "Saree", got.Attrs["name"]) // untouched fields survive

	_, err = svc.Edit(ctx, asAdmin, "missing", models.Attrs{"price": 1.0})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	product, err := svc.Add(ctx, asAdmin, models.Attrs{"name": "Saree"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, asAdmin, product.ID))
	require.NoError(t, svc.Delete(ctx, asAdmin, product.ID)) // already gone

	_, err = svc.Get(ctx, product.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

// rangelessStore refuses range filters the way a store without composite
// indexes would, forcing the catalog's client-side price fallback.
type rangelessStore struct{ inner docstore.Store }

type rangelessCollection struct{ docstore.Collection }

func (s *rangelessStore) Collection(name string) docstore.Collection {
	return &rangelessCollection{s.inner.Collection(name)}
}

func (c *rangelessCollection) Find(ctx context.Context, filters []docstore.Filter, dest interface{}) error {
	for _, f := range filters {
		if f.Op != docstore.OpEq {
			return docstore.ErrUnsupportedFilter
		}
	}
	return c.Collection.Find(ctx, filters, dest)
}

func TestListFallsBackWhenRangeUnsupported(t *testing.T) {
	ctx := context.Background()
	inner := docstore.NewMemory()
	store := &rangelessStore{inner: inner}
	svc := services.NewCatalogService(store, rolesFor(t, inner))

	for name, price := range map[string]float64{"cheap": 500, "mid": 1500, "dear": 9000} {
		_, err := svc.Add(ctx, asAdmin, models.Attrs{"name": name, "category": "sarees", "price": price})
		require.NoError(t, err)
	}

	min, max := 1000.0, 5000.0
	products, err := svc.List(ctx, services.ListFilter{Category: "Sarees", MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "mid", products[0].Attrs["name"])
}
