package sale

import (
	"time"

	"github.com/google/uuid"
)

// Outcomes describe how a sale was fulfilled.
const (
	OutcomeCompleted = "completed"
	OutcomeDelivered = "delivered"
)

// Extra is a topping or syrup added to a line item, copied by value so
// later catalog edits never rewrite history.
type Extra struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name"`
	Price float64    `json:"price"`
}

// SaleItem is one line of a sale. Like Extra it is a snapshot, not a
// reference: deleting a product does not retract it from old sales.
type SaleItem struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	Toppings    []Extra    `json:"toppings,omitempty"`
	Syrups      []Extra    `json:"syrups,omitempty"`
	Total       float64    `json:"total"`
}

// Sale is one completed transaction in the ledger.
type Sale struct {
	ID             uuid.UUID  `json:"id"`
	Date           time.Time  `json:"date"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName   string     `json:"customer_name,omitempty"`
	Items          []SaleItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	DeliveryFee    float64    `json:"delivery_fee"`
	Total          float64    `json:"total"`
	PaymentMethod  string     `json:"payment_method"`
	SellerID       *uuid.UUID `json:"seller_id,omitempty"`
	SellerUsername string     `json:"seller_username"`
	DriverID       *uuid.UUID `json:"driver_id,omitempty"`
	DriverUsername string     `json:"driver_username,omitempty"`
	Outcome        string     `json:"outcome"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SaleRequest is the payload for recording or correcting a sale.
type SaleRequest struct {
	CustomerID    string     `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Items         []SaleItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	DeliveryFee   float64    `json:"delivery_fee"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Outcome       string     `json:"outcome,omitempty"`
}

// DailyTotal is the aggregate sold on one calendar day.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}
