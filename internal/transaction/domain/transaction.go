// Package domain models purchase transactions and their synthesis: linked
// transactions derive from a converted session's cart, standalone ones are
// drawn independently. Both reserve stock through the inventory ledger.
package domain

import "time"

const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Transaction is immutable once created and always carries at least one
// item; candidates that end up empty are discarded, never emitted.
type Transaction struct {
	TransactionID string    `json:"transaction_id"`
	SessionID     *string   `json:"session_id"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
	Items         []Item    `json:"items"`
	Subtotal      float64   `json:"subtotal"`
	Discount      float64   `json:"discount"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}
