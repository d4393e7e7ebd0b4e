package models

import (
	"time"

	"github.com/google/uuid"
)

// StationOrder is a per-destination work ticket derived from an order's line
// items: at most one per order per station. Its status moves independently
// of the parent order; ticket statuses are inputs, never outputs, of the
// composite-status reconciliation.
type StationOrder struct {
	ID        uuid.UUID   `json:"id"`
	OrderID   uuid.UUID   `json:"order_id"`
	Station   Destination `json:"station"`
	StockID   *uuid.UUID  `json:"stock_id,omitempty"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
