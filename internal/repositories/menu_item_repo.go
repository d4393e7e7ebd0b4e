package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type menuItemRepo struct {
	db DBTX
}

func NewMenuItemRepo(db DBTX) MenuItemRepository {
	return &menuItemRepo{db: db}
}

const menuItemColumns = `id, restaurant_id, name, price, destination, stock_id, ingredients, image, created_at, updated_at`

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, price, destination, stock_id, ingredients, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.RestaurantID, item.Name, item.Price, item.Destination, item.StockID, item.Ingredients, item.Image)
	return err
}

func (r *menuItemRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE restaurant_id = $1 AND id = $2
	`
	item := &models.MenuItem{}
	err := r.db.QueryRow(ctx, query, restaurantID, id).Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Price, &item.Destination, &item.StockID, &item.Ingredients, &item.Image, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *menuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Price, &item.Destination, &item.StockID, &item.Ingredients, &item.Image, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuItemRepo) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, price = $2, destination = $3, stock_id = $4, ingredients = $5, image = $6, updated_at = NOW()
		WHERE restaurant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Price, item.Destination, item.StockID, item.Ingredients, item.Image, item.RestaurantID, item.ID)
	return err
}

func (r *menuItemRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, restaurantID, id)
	return err
}
