package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock is one inventory ledger entry. Quantity never goes negative as a
// result of an order mutation; decrements are floor-checked at the ledger.
type Stock struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	DrinkName    string    `json:"drink_name"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Image        *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockPage is the pagination envelope for stock listings.
type StockPage struct {
	Items       []*Stock `json:"items"`
	TotalCount  int      `json:"totalCount"`
	PageSize    int      `json:"pageSize"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}
