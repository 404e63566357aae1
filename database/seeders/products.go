package seeders

import (
	"context"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small starter catalog. Categories are stored
// lowercase so the case-insensitive category filter works out of the box.
func SeedProducts(ctx context.Context, store docstore.Store) error {
	products := []models.Attrs{
		{
			"name":        "Banarasi Silk Saree",
			"category":    "sarees",
			"price":       4999.0,
			"stock":       12.0,
			"description": "Handwoven silk saree with zari border",
		},
		{
			"name":        "Cotton Anarkali Kurta",
			"category":    "kurtas",
			"price":       1299.0,
			"stock":       40.0,
			"description": "Block-printed cotton, full length",
		},
		{
			"name":        "Chanderi Dupatta",
			"category":    "dupattas",
			"price":       899.0,
			"stock":       25.0,
			"description": "Lightweight chanderi with gold tassels",
		},
		{
			"name":     "Embroidered Lehenga",
			"category": "lehengas",
			"price":    8499.0,
			"stock":    5.0,
		},
	}

	col := store.Collection("products")
	for _, p := range products {
		if _, err := col.Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
