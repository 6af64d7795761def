package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Kinds of catalog items; each kind is served as its own collection.
const (
	KindProduct = "producto"
	KindTopping = "topping"
	KindSyrup   = "jarabe"
)

// Item is one sellable catalog entry. Toppings and syrups share the
// shape; only products use the out-of-stock flag.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	OutOfStock bool      `json:"out_of_stock"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemRequest is the payload for creating or updating an item.
type ItemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// StockRequest toggles a product's out-of-stock flag.
type StockRequest struct {
	OutOfStock bool `json:"out_of_stock"`
}
