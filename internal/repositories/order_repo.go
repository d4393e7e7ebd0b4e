package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	ListByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]*models.Order, error)
	ListByTableAndStatuses(ctx context.Context, restaurantID, tableID uuid.UUID, statuses []models.Status) ([]*models.Order, error)
	ListByStatuses(ctx context.Context, restaurantID uuid.UUID, statuses []models.Status) ([]*models.Order, error)
	ListByStationAndStatuses(ctx context.Context, restaurantID uuid.UUID, station models.Destination, statuses []models.Status) ([]*models.Order, error)
	ListHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error)
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error)
}

type orderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, restaurant_id, table_id, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, restaurant_id, table_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.RestaurantID, order.TableID, order.Status)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND id = $2
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return order, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *orderRepo) ListByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND id = ANY($2)
		ORDER BY created_at
	`
	return r.list(ctx, query, restaurantID, ids)
}

func (r *orderRepo) ListByTableAndStatuses(ctx context.Context, restaurantID, tableID uuid.UUID, statuses []models.Status) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND table_id = $2 AND status = ANY($3)
		ORDER BY created_at
	`
	return r.list(ctx, query, restaurantID, tableID, statusStrings(statuses))
}

func (r *orderRepo) ListByStatuses(ctx context.Context, restaurantID uuid.UUID, statuses []models.Status) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND status = ANY($2)
		ORDER BY created_at
	`
	return r.list(ctx, query, restaurantID, statusStrings(statuses))
}

// ListByStationAndStatuses returns orders holding a ticket for the given
// station whose ticket is in one of the given statuses: the station staff's
// work queue view.
func (r *orderRepo) ListByStationAndStatuses(ctx context.Context, restaurantID uuid.UUID, station models.Destination, statuses []models.Status) ([]*models.Order, error) {
	query := `
		SELECT o.id, o.restaurant_id, o.table_id, o.status, o.created_at, o.updated_at
		FROM orders o
		WHERE o.restaurant_id = $1 AND EXISTS (
			SELECT 1 FROM station_orders s
			WHERE s.order_id = o.id AND s.station = $2 AND s.status = ANY($3)
		)
		ORDER BY o.created_at
	`
	return r.list(ctx, query, restaurantID, station, statusStrings(statuses))
}

func (r *orderRepo) ListHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, restaurantID, limit, offset)
}

func (r *orderRepo) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE restaurant_id = $1`, restaurantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepo) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
