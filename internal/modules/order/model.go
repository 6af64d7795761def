package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/modules/sale"
)

// Order lifecycle statuses. StatusDeliveredPendingSale is an internal
// claim marker held only for the duration of the conversion
// transaction; clients never observe it.
const (
	StatusReceived             = "received"
	StatusPreparing            = "preparing"
	StatusReady                = "ready"
	StatusOutForDelivery       = "out_for_delivery"
	StatusDeliveredPendingSale = "delivered_pending_sale"
	StatusDelivered            = "delivered"
	StatusCancelled            = "cancelled"
)

// validTransitions drives status updates. Conversion to a sale is the
// only way out of out_for_delivery besides cancellation.
var validTransitions = map[string][]string{
	StatusReceived:       {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusCancelled},
}

func canTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an online order awaiting fulfillment. Items reuse the sale
// snapshot shape so conversion carries them over untouched.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	Items           []sale.SaleItem `json:"items"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	Seen            bool            `json:"seen"`
	DriverID        *uuid.UUID      `json:"driver_id,omitempty"`
	DriverUsername  string          `json:"driver_username,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SubmitRequest is the public intake payload.
type SubmitRequest struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	Items           []sale.SaleItem `json:"items"`
	Total           float64         `json:"total"`
}

// StatusRequest moves an order along the lifecycle. ExpectedStatus is
// the state the caller last saw; the update fails if another staff
// member moved the order first.
type StatusRequest struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expected_status"`
}

// AssignRequest hands an order to a driver account.
type AssignRequest struct {
	DriverID string `json:"driver_id"`
}

// ConvertRequest finalizes an order into a ledger sale.
type ConvertRequest struct {
	PaymentMethod string  `json:"payment_method"`
	DeliveryFee   float64 `json:"delivery_fee"`
	CustomerID    string  `json:"customer_id,omitempty"`
	Outcome       string  `json:"outcome,omitempty"`
}

// UnseenCount is the badge payload for the order inbox.
type UnseenCount struct {
	Count int `json:"count"`
}
