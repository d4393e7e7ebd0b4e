package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated staff member. Credentials and issuance live in
// the identity service; this side only consumes the resolved principal.
type User struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the per-request authenticated identity: trusted verbatim
// from the token, with the role already resolved to its closed tag.
type Principal struct {
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Role         Role
	Permissions  []string
}
