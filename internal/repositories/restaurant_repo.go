package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type RestaurantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*models.Restaurant, error)
}

type restaurantRepo struct{ db DBTX }

func NewRestaurantRepo(db DBTX) RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM restaurants WHERE id = $1`
	restaurant := &models.Restaurant{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Address,
		&restaurant.CreatedAt, &restaurant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

func (r *restaurantRepo) List(ctx context.Context, limit, offset int) ([]*models.Restaurant, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM restaurants ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{}
		if err := rows.Scan(
			&restaurant.ID, &restaurant.Name, &restaurant.Address,
			&restaurant.CreatedAt, &restaurant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}
