package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tablemate/internal/models"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	Update(ctx context.Context, id uuid.UUID, quantity int, instructions string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderItemRepo struct {
	db DBTX
}

func NewOrderItemRepo(db DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, quantity, special_instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.OrderID, item.MenuItemID, item.Quantity, item.SpecialInstructions)
	return err
}

// GetByID returns the line item with its menu item expanded, or nil when it
// does not exist.
func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.menu_item_id, i.quantity, i.special_instructions, i.created_at,
		       m.id, m.restaurant_id, m.name, m.price, m.destination, m.stock_id, m.ingredients, m.image, m.created_at, m.updated_at
		FROM order_items i
		JOIN menu_items m ON m.id = i.menu_item_id
		WHERE i.id = $1
	`
	item, err := scanOrderItemWithMenu(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.menu_item_id, i.quantity, i.special_instructions, i.created_at,
		       m.id, m.restaurant_id, m.name, m.price, m.destination, m.stock_id, m.ingredients, m.image, m.created_at, m.updated_at
		FROM order_items i
		JOIN menu_items m ON m.id = i.menu_item_id
		WHERE i.order_id = $1
		ORDER BY i.created_at
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item, err := scanOrderItemWithMenu(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) Update(ctx context.Context, id uuid.UUID, quantity int, instructions string) error {
	query := `UPDATE order_items SET quantity = $1, special_instructions = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, quantity, instructions, id)
	return err
}

func (r *orderItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM order_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func scanOrderItemWithMenu(row pgx.Row) (*models.OrderItem, error) {
	item := &models.OrderItem{MenuItem: &models.MenuItem{}}
	m := item.MenuItem
	err := row.Scan(
		&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.SpecialInstructions, &item.CreatedAt,
		&m.ID, &m.RestaurantID, &m.Name, &m.Price, &m.Destination, &m.StockID, &m.Ingredients, &m.Image, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}
