package models

import (
	"time"

	"github.com/google/uuid"
)

// TableStatus is the occupancy status of a table.
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
)

// Table is a physical seating unit owned by one restaurant. Order creation
// flips it to OCCUPIED; billing finalization releases it.
type Table struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	Number       string      `json:"number"`
	Status       TableStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
