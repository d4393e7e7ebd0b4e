package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the query surface repositories run against. It is satisfied by
// *pgxpool.Pool, pgx.Tx, and pgxmock pools, so the same repository code
// serves both pooled reads and transactional writes.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store bundles one repository per entity, all bound to the same DBTX.
type Store struct {
	Orders        OrderRepository
	OrderItems    OrderItemRepository
	Stations      StationOrderRepository
	Stocks        StockRepository
	Tables        TableRepository
	MenuItems     MenuItemRepository
	Notifications NotificationRepository
	Bills         BillRepository
	Users         UserRepository
}

// NewStore builds a repository bundle over db.
func NewStore(db DBTX) *Store {
	return &Store{
		Orders:        NewOrderRepo(db),
		OrderItems:    NewOrderItemRepo(db),
		Stations:      NewStationOrderRepo(db),
		Stocks:        NewStockRepo(db),
		Tables:        NewTableRepo(db),
		MenuItems:     NewMenuItemRepo(db),
		Notifications: NewNotificationRepo(db),
		Bills:         NewBillRepo(db),
		Users:         NewUserRepo(db),
	}
}

// TxManager runs a function against a transaction-bound Store with
// commit-or-rollback on every exit path.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(store *Store) error) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager over a pgx pool.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(store *Store) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
