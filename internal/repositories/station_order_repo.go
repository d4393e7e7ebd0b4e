package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type StationOrderRepository interface {
	Create(ctx context.Context, ticket *models.StationOrder) error
	GetByOrderAndStation(ctx context.Context, orderID uuid.UUID, station models.Destination) (*models.StationOrder, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.StationOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, status models.Status) error
}

type stationOrderRepo struct {
	db DBTX
}

func NewStationOrderRepo(db DBTX) StationOrderRepository {
	return &stationOrderRepo{db: db}
}

func (r *stationOrderRepo) Create(ctx context.Context, ticket *models.StationOrder) error {
	query := `
		INSERT INTO station_orders (id, order_id, station, stock_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, ticket.ID, ticket.OrderID, ticket.Station, ticket.StockID, ticket.Status)
	return err
}

func (r *stationOrderRepo) GetByOrderAndStation(ctx context.Context, orderID uuid.UUID, station models.Destination) (*models.StationOrder, error) {
	query := `
		SELECT id, order_id, station, stock_id, status, created_at, updated_at
		FROM station_orders
		WHERE order_id = $1 AND station = $2
	`
	ticket := &models.StationOrder{}
	err := r.db.QueryRow(ctx, query, orderID, station).Scan(
		&ticket.ID, &ticket.OrderID, &ticket.Station, &ticket.StockID, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *stationOrderRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.StationOrder, error) {
	query := `
		SELECT id, order_id, station, stock_id, status, created_at, updated_at
		FROM station_orders
		WHERE order_id = $1
		ORDER BY station
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.StationOrder
	for rows.Next() {
		ticket := &models.StationOrder{}
		if err := rows.Scan(&ticket.ID, &ticket.OrderID, &ticket.Station, &ticket.StockID, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func (r *stationOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	query := `UPDATE station_orders SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *stationOrderRepo) UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, status models.Status) error {
	query := `UPDATE station_orders SET status = $1, updated_at = NOW() WHERE order_id = $2`
	_, err := r.db.Exec(ctx, query, status, orderID)
	return err
}
