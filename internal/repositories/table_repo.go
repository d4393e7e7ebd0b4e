package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error
	UpdateNumber(ctx context.Context, restaurantID, id uuid.UUID, number string) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type tableRepo struct {
	db DBTX
}

func NewTableRepo(db DBTX) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (id, restaurant_id, number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, table.ID, table.RestaurantID, table.Number, table.Status)
	return err
}

func (r *tableRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error) {
	query := `
		SELECT id, restaurant_id, number, status, created_at, updated_at
		FROM tables
		WHERE restaurant_id = $1 AND id = $2
	`
	table := &models.Table{}
	err := r.db.QueryRow(ctx, query, restaurantID, id).Scan(
		&table.ID, &table.RestaurantID, &table.Number, &table.Status, &table.CreatedAt, &table.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error) {
	query := `
		SELECT id, restaurant_id, number, status, created_at, updated_at
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY number
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.RestaurantID, &table.Number, &table.Status, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	query := `UPDATE tables SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *tableRepo) UpdateNumber(ctx context.Context, restaurantID, id uuid.UUID, number string) error {
	query := `UPDATE tables SET number = $1, updated_at = NOW() WHERE restaurant_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, number, restaurantID, id)
	return err
}

func (r *tableRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	query := `DELETE FROM tables WHERE restaurant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, restaurantID, id)
	return err
}
