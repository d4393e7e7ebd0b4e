package models

import (
	"time"

	"github.com/google/uuid"
)

// Destination is the preparation station a menu item is routed to.
type Destination string

const (
	DestinationKitchen Destination = "KITCHEN"
	DestinationBar     Destination = "BAR"
)

// ParseDestination validates a raw destination value.
func ParseDestination(raw string) (Destination, bool) {
	switch Destination(raw) {
	case DestinationKitchen, DestinationBar:
		return Destination(raw), true
	}
	return "", false
}

// MenuItem is an orderable product. Immutable during an order's life;
// referenced, never owned, by order line items.
type MenuItem struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	Name         string      `json:"name"`
	Price        float64     `json:"price"`
	Destination  Destination `json:"destination"`
	StockID      *uuid.UUID  `json:"stock_id,omitempty"`
	Ingredients  string      `json:"ingredients,omitempty"`
	Image        *string     `json:"image,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
