package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/common"
	"tablemate/internal/models"
)

type StockRepository interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Stock, error)
	List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Stock, error)
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error)
	ListBelowThreshold(ctx context.Context, restaurantID uuid.UUID, threshold int) ([]*models.Stock, error)
	Decrement(ctx context.Context, id uuid.UUID, quantity int) error
	Increment(ctx context.Context, id uuid.UUID, quantity int) error
}

type stockRepo struct {
	db DBTX
}

func NewStockRepo(db DBTX) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, restaurant_id, drink_name, price, quantity, image, created_at, updated_at`

func (r *stockRepo) Create(ctx context.Context, stock *models.Stock) error {
	query := `
		INSERT INTO stocks (id, restaurant_id, drink_name, price, quantity, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, stock.ID, stock.RestaurantID, stock.DrinkName, stock.Price, stock.Quantity, stock.Image)
	return err
}

func (r *stockRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE restaurant_id = $1 AND id = $2
	`
	stock := &models.Stock{}
	err := r.db.QueryRow(ctx, query, restaurantID, id).Scan(
		&stock.ID, &stock.RestaurantID, &stock.DrinkName, &stock.Price, &stock.Quantity, &stock.Image, &stock.CreatedAt, &stock.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stock, nil
}

func (r *stockRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE restaurant_id = $1
		ORDER BY drink_name
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, restaurantID, limit, offset)
}

func (r *stockRepo) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stocks WHERE restaurant_id = $1`, restaurantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stocks: %w", err)
	}
	return count, nil
}

func (r *stockRepo) ListBelowThreshold(ctx context.Context, restaurantID uuid.UUID, threshold int) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE restaurant_id = $1 AND quantity <= $2
		ORDER BY quantity
	`
	return r.list(ctx, query, restaurantID, threshold)
}

// Decrement applies a floor-checked atomic decrement. The conditional update
// is the serialization point keeping concurrent debits from overselling.
func (r *stockRepo) Decrement(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE stocks
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1
	`
	tag, err := r.db.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stocks WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("stock %s: %w", id, common.ErrNotFound)
		}
		return fmt.Errorf("insufficient stock: %w", common.ErrConflict)
	}
	return nil
}

func (r *stockRepo) Increment(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE stocks
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *stockRepo) list(ctx context.Context, query string, args ...any) ([]*models.Stock, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		stock := &models.Stock{}
		if err := rows.Scan(&stock.ID, &stock.RestaurantID, &stock.DrinkName, &stock.Price, &stock.Quantity, &stock.Image, &stock.CreatedAt, &stock.UpdatedAt); err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}
