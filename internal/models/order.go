package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the aggregate root of a dining session segment. Its composite
// status is derived from its station tickets whenever any exist; otherwise
// it is self-managed. Orders are never hard-deleted once tickets exist —
// cancellation is a status.
type Order struct {
	ID           uuid.UUID    `json:"id"`
	RestaurantID uuid.UUID    `json:"restaurant_id"`
	TableID      uuid.UUID    `json:"table_id"`
	Status       Status       `json:"status"`
	Items        []*OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// OrderItem is one line within an order.
type OrderItem struct {
	ID                  uuid.UUID `json:"id"`
	OrderID             uuid.UUID `json:"order_id"`
	MenuItemID          uuid.UUID `json:"menu_item_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"special_instructions"`
	MenuItem            *MenuItem `json:"menu_item,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// OrderPage is the pagination envelope for order history listings.
type OrderPage struct {
	Items       []*Order `json:"items"`
	TotalCount  int      `json:"totalCount"`
	PageSize    int      `json:"pageSize"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}
