package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the tenant boundary: every table, menu item, stock entry,
// order, and staff member belongs to exactly one restaurant.
type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
