package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

// CatalogService owns the product collection: public reads, admin-gated
// writes. The admin check resolves the caller's role claim through the
// identity gateway. There is no fallback identity; an unresolved caller is
// rejected outright.
type CatalogService struct {
	products docstore.Collection
	roles    identity.RoleProvider
}

func NewCatalogService(store docstore.Store, roles identity.RoleProvider) *CatalogService {
	return &CatalogService{
		products: store.Collection("products"),
		roles:    roles,
	}
}

// ListFilter narrows List results. All set fields must match (conjunctive).
type ListFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// List returns all products matching the filter. Category matching is
// case-insensitive (categories are stored lowercase and the query is
// lowercased before comparison). Nothing matching yields an empty slice,
// never an error.
func (s *CatalogService) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	var eq, rng []docstore.Filter
	if filter.Category != "" {
		eq = append(eq, docstore.Eq("category", strings.ToLower(filter.Category)))
	}
	if filter.MinPrice != nil {
		rng = append(rng, docstore.Gte("price", *filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		rng = append(rng, docstore.Lte("price", *filter.MaxPrice))
	}

	var products []models.Product
	err := s.products.Find(ctx, append(eq, rng...), &products)
	if errors.Is(err, docstore.ErrUnsupportedFilter) && len(rng) > 0 {
		// The store cannot combine these range filters; query on equality
		// alone and apply the price bounds client-side.
		if err = s.products.Find(ctx, eq, &products); err == nil {
			products = collection.Filter(products, func(p models.Product) bool {
				return priceInRange(p, filter.MinPrice, filter.MaxPrice)
			})
		}
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch products", err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func priceInRange(p models.Product, min, max *float64) bool {
	price, ok := p.Attrs.Number("price")
	if !ok {
		return false
	}
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}

// Get returns a single product by id.
func (s *CatalogService) Get(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := s.products.Get(ctx, id, &product)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Product{}, apperr.NotFound("Product not found")
	}
	if err != nil {
		return models.Product{}, apperr.Internal("Failed to fetch product", err)
	}
	return product, nil
}

// Add creates a product from the given attributes. Admin only. Attributes
// with absent/empty values are stripped before storing; an empty remainder
// is a validation error.
func (s *CatalogService) Add(ctx context.Context, caller identity.Identity, attrs models.Attrs) (models.Product, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return models.Product{}, err
	}

	cleaned := normalizeAttrs(attrs)
	if len(cleaned) == 0 {
		return models.Product{}, apperr.Validation("No valid product data provided.")
	}

	id, err := s.products.Add(ctx, cleaned)
	if err != nil {
		return models.Product{}, apperr.Internal("Failed to add product", err)
	}
	return models.Product{ID: id, Attrs: cleaned}, nil
}

// Edit updates an existing product's attributes. Admin only.
func (s *CatalogService) Edit(ctx context.Context, caller identity.Identity, id string, attrs models.Attrs) (models.Product, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return models.Product{}, err
	}

	var existing models.Product
	err := s.products.Get(ctx, id, &existing)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.Product{}, apperr.NotFound("Product not found.")
	}
	if err != nil {
		return models.Product{}, apperr.Internal("Failed to fetch product", err)
	}

	cleaned := normalizeAttrs(attrs)
	if len(cleaned) == 0 {
		return models.Product{}, apperr.Validation("No valid fields to update.")
	}

	if err := s.products.Update(ctx, id, cleaned); err != nil {
		return models.Product{}, apperr.Internal("Failed to update product", err)
	}
	return models.Product{ID: id, Attrs: cleaned}, nil
}

// Delete removes a product. Admin only. Deleting an absent id is a no-op.
func (s *CatalogService) Delete(ctx context.Context, caller identity.Identity, id string) error {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete product", err)
	}
	return nil
}

func (s *CatalogService) requireAdmin(ctx context.Context, caller identity.Identity) error {
	if caller.UID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	role, err := s.roles.Role(ctx, caller.UID)
	if err != nil {
		return apperr.Internal("Failed to resolve role", err)
	}
	if role != identity.RoleAdmin {
		return apperr.Forbidden("Access denied. Admins only.")
	}
	return nil
}

// normalizeAttrs strips empty attributes and lowercases the category so the
// case-insensitive category filter holds on both sides of the comparison.
func normalizeAttrs(attrs models.Attrs) map[string]interface{} {
	cleaned := attrs.Clean()
	if category, ok := cleaned.String("category"); ok {
		cleaned["category"] = strings.ToLower(category)
	}
	return cleaned
}
