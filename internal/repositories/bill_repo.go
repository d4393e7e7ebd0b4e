package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Bill, error)
}

type billRepo struct {
	db DBTX
}

func NewBillRepo(db DBTX) BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (id, restaurant_id, total, tax, tip, discount, card_last4, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, bill.ID, bill.RestaurantID, bill.Total, bill.Tax, bill.Tip, bill.Discount, bill.CardLast4)
	if err != nil {
		return err
	}
	for _, orderID := range bill.OrderIDs {
		_, err := r.db.Exec(ctx, `INSERT INTO bill_orders (bill_id, order_id) VALUES ($1, $2)`, bill.ID, orderID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Bill, error) {
	query := `
		SELECT id, restaurant_id, total, tax, tip, discount, card_last4, created_at
		FROM bills
		WHERE restaurant_id = $1 AND id = $2
	`
	bill := &models.Bill{}
	err := r.db.QueryRow(ctx, query, restaurantID, id).Scan(
		&bill.ID, &bill.RestaurantID, &bill.Total, &bill.Tax, &bill.Tip, &bill.Discount, &bill.CardLast4, &bill.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT order_id FROM bill_orders WHERE bill_id = $1`, bill.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var orderID uuid.UUID
		if err := rows.Scan(&orderID); err != nil {
			return nil, err
		}
		bill.OrderIDs = append(bill.OrderIDs, orderID)
	}
	return bill, rows.Err()
}
