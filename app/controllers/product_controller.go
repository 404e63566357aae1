package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

// ProductController serves the catalog. Reads are public; mutations require
// an authenticated caller and the service enforces the admin role.
type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// List handles GET /products. Supports ?category=, ?minPrice= and ?maxPrice=
// query filters; unparseable price values are ignored rather than rejected.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ListFilter{Category: q.Get("category")}
	filter.MinPrice = parsePrice(q.Get("minPrice"))
	filter.MaxPrice = parsePrice(q.Get("maxPrice"))

	products, err := c.catalog.List(r.Context(), filter)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, products)
}

// Get handles GET /products/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.Get(r.Context(), router.Param(r, "id"))
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, product)
}

// Add handles POST /products. The body is an open attribute map, not a fixed
// schema; empty values are stripped by the service.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	attrs, ok := decodeAttrs(w, r)
	if !ok {
		return
	}

	caller, _ := identity.FromContext(r.Context())
	product, err := c.catalog.Add(r.Context(), caller, attrs)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{
		"message": "Product added successfully",
		"product": product,
	})
}

// Edit handles PUT /products/{id}.
func (c *ProductController) Edit(w http.ResponseWriter, r *http.Request) {
	attrs, ok := decodeAttrs(w, r)
	if !ok {
		return
	}

	caller, _ := identity.FromContext(r.Context())
	product, err := c.catalog.Edit(r.Context(), caller, router.Param(r, "id"), attrs)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message":        "Product updated successfully",
		"updatedProduct": product,
	})
}

// Delete handles DELETE /products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	if err := c.catalog.Delete(r.Context(), caller, router.Param(r, "id")); err != nil {
		response.WriteError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}

func decodeAttrs(w http.ResponseWriter, r *http.Request) (models.Attrs, bool) {
	var attrs models.Attrs
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return attrs, true
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
