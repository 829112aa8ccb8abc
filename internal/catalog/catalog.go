// Package catalog provides the static list of purchasable products.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"
)

// Product categories used by the default catalog.
const (
	CategoryBeverage = "beverage"
	CategoryFood     = "food"
	CategoryDessert  = "dessert"
	CategorySnack    = "snack"
)

// Default returns the built-in product grid: the stocked drinks followed
// by placeholder slots that keep the grid shape but cannot be sold.
func Default() []model.Product {
	products := []model.Product{
		{
			ID:       "b1",
			Name:     "Americano",
			Price:    65,
			Category: CategoryBeverage,
			Image:    "https://images.unsplash.com/photo-1509042239860-f550ce710b93?auto=format&fit=crop&q=80&w=200",
			Color:    "94",
		},
		{
			ID:       "b2",
			Name:     "Latte",
			Price:    95,
			Category: CategoryBeverage,
			Image:    "https://images.unsplash.com/photo-1541167760496-1628856ab752?auto=format&fit=crop&q=80&w=200",
			Color:    "94",
		},
	}
	for i := 1; i <= 8; i++ {
		products = append(products, model.Product{
			ID:       fmt.Sprintf("blank%d", i),
			Category: CategoryBeverage,
			Color:    "240",
		})
	}
	return products
}

// Load returns the catalog from the given JSON file, or the built-in
// default when path is empty. Unlike ledger corruption, a catalog file
// that exists but does not parse is a configuration mistake and is
// reported as an error.
func Load(path string) ([]model.Product, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to read catalog file %s", path), err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("catalog file %s is not a valid product list", path), err)
	}
	return products, nil
}

// Sellable returns the products that can actually be added to an order,
// excluding placeholder slots.
func Sellable(products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !p.Placeholder() {
			out = append(out, p)
		}
	}
	return out
}
