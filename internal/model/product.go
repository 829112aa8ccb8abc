// Package model defines the core domain types shared across the application.
package model

// Product is a single entry in the sales catalog. Prices are stored in the
// smallest currency unit. A Product with an empty Name is a placeholder slot
// in the grid and cannot be sold.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Color    string `json:"color"`
	Price    int64  `json:"price"`
}

// Placeholder reports whether this product is an empty grid slot.
func (p Product) Placeholder() bool {
	return p.Name == ""
}

// OrderLine is a product plus the quantity being purchased. The product
// fields are copied at add time, so later catalog edits never change an
// in-progress cart or a recorded sale.
type OrderLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Amount returns price multiplied by quantity for this line.
func (l OrderLine) Amount() int64 {
	return l.Price * int64(l.Quantity)
}
