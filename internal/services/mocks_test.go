package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// Mock repositories shared by the service tests.

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, ids)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByTableAndStatuses(ctx context.Context, restaurantID, tableID uuid.UUID, statuses []models.Status) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, tableID, statuses)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatuses(ctx context.Context, restaurantID uuid.UUID, statuses []models.Status) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, statuses)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStationAndStatuses(ctx context.Context, restaurantID uuid.UUID, station models.Destination, statuses []models.Status) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, station, statuses)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) Update(ctx context.Context, id uuid.UUID, quantity int, instructions string) error {
	args := m.Called(ctx, id, quantity, instructions)
	return args.Error(0)
}

func (m *MockOrderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStationOrderRepository struct {
	mock.Mock
}

func (m *MockStationOrderRepository) Create(ctx context.Context, ticket *models.StationOrder) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockStationOrderRepository) GetByOrderAndStation(ctx context.Context, orderID uuid.UUID, station models.Destination) (*models.StationOrder, error) {
	args := m.Called(ctx, orderID, station)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StationOrder), args.Error(1)
}

func (m *MockStationOrderRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.StationOrder, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.StationOrder), args.Error(1)
}

func (m *MockStationOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStationOrderRepository) UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, status models.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*models.Stock, error) {
	args := m.Called(ctx, restaurantID, limit, offset)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) ListBelowThreshold(ctx context.Context, restaurantID uuid.UUID, threshold int) ([]*models.Stock, error) {
	args := m.Called(ctx, restaurantID, threshold)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Decrement(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockStockRepository) Increment(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, table *models.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Table, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Table, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]*models.Table), args.Error(1)
}

func (m *MockTableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TableStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTableRepository) UpdateNumber(ctx context.Context, restaurantID, id uuid.UUID, number string) error {
	args := m.Called(ctx, restaurantID, id, number)
	return args.Error(0)
}

func (m *MockTableRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	args := m.Called(ctx, restaurantID, id)
	return args.Error(0)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	args := m.Called(ctx, restaurantID, id)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, bill *models.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Bill, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRestaurantAndRole(ctx context.Context, restaurantID uuid.UUID, role models.Role) ([]*models.User, error) {
	args := m.Called(ctx, restaurantID, role)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRole(ctx context.Context, restaurantID uuid.UUID, role models.Role, message, notificationType string) error {
	args := m.Called(ctx, restaurantID, role, message, notificationType)
	return args.Error(0)
}

func (m *MockNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, message, notificationType string) error {
	args := m.Called(ctx, userID, message, notificationType)
	return args.Error(0)
}

// newMockStore assembles a Store over the mock repositories so the service
// under test sees the same bundle inside and outside a transaction.
func newMockStore(orders *MockOrderRepository, items *MockOrderItemRepository, stations *MockStationOrderRepository,
	stocks *MockStockRepository, tables *MockTableRepository, menuItems *MockMenuItemRepository,
	notifications *MockNotificationRepository, bills *MockBillRepository, users *MockUserRepository) *repositories.Store {
	return &repositories.Store{
		Orders:        orders,
		OrderItems:    items,
		Stations:      stations,
		Stocks:        stocks,
		Tables:        tables,
		MenuItems:     menuItems,
		Notifications: notifications,
		Bills:         bills,
		Users:         users,
	}
}

// fakeTxManager hands the shared store to the callback; transaction
// boundaries collapse in unit tests.
type fakeTxManager struct {
	store *repositories.Store
	err   error
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(store *repositories.Store) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.store)
}
