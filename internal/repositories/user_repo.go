package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByRestaurantAndRole(ctx context.Context, restaurantID uuid.UUID, role models.Role) ([]*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, restaurant_id, email, first_name, last_name, role, created_at
		FROM users
		WHERE id = $1
	`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.RestaurantID, &user.Email, &user.FirstName, &user.LastName, &user.Role, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListByRestaurantAndRole is the fan-out audience query: users of a given
// restaurant filtered by role.
func (r *userRepo) ListByRestaurantAndRole(ctx context.Context, restaurantID uuid.UUID, role models.Role) ([]*models.User, error) {
	query := `
		SELECT id, restaurant_id, email, first_name, last_name, role, created_at
		FROM users
		WHERE restaurant_id = $1 AND role = $2
	`
	rows, err := r.db.Query(ctx, query, restaurantID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.RestaurantID, &user.Email, &user.FirstName, &user.LastName, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
