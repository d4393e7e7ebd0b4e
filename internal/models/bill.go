package models

import (
	"time"

	"github.com/google/uuid"
)

// Bill closes out one or more orders for a table. Created once per billing
// event and immutable afterwards; the payment breakdown fields are set at
// creation time only.
type Bill struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	Total        float64     `json:"total"`
	OrderIDs     []uuid.UUID `json:"order_ids"`
	Tax          *float64    `json:"tax,omitempty"`
	Tip          *float64    `json:"tip,omitempty"`
	Discount     *float64    `json:"discount,omitempty"`
	CardLast4    *string     `json:"card_last4,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// BillBreakdown carries the optional payment enrichment supplied when a
// bill is generated.
type BillBreakdown struct {
	Tax       *float64 `json:"tax"`
	Tip       *float64 `json:"tip"`
	Discount  *float64 `json:"discount"`
	CardLast4 *string  `json:"card_last4"`
}
