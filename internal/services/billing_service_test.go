package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"tablemate/internal/common"
	"tablemate/internal/models"
)

type BillingServiceTestSuite struct {
	suite.Suite
	orders       *MockOrderRepository
	items        *MockOrderItemRepository
	stations     *MockStationOrderRepository
	tables       *MockTableRepository
	bills        *MockBillRepository
	notifier     *MockNotifier
	service      BillingServiceInterface
	ctx          context.Context
	restaurantID uuid.UUID
	tableID      uuid.UUID
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.orders = &MockOrderRepository{}
	suite.items = &MockOrderItemRepository{}
	suite.stations = &MockStationOrderRepository{}
	suite.tables = &MockTableRepository{}
	suite.bills = &MockBillRepository{}
	suite.notifier = &MockNotifier{}

	store := newMockStore(suite.orders, suite.items, suite.stations, &MockStockRepository{},
		suite.tables, &MockMenuItemRepository{}, &MockNotificationRepository{}, suite.bills, &MockUserRepository{})
	suite.service = NewBillingService(store, &fakeTxManager{store: store}, suite.notifier)

	suite.ctx = context.Background()
	suite.restaurantID = uuid.New()
	suite.tableID = uuid.New()
}

func (suite *BillingServiceTestSuite) TestRequestPaymentByTable() {
	table := &models.Table{
		ID:           suite.tableID,
		RestaurantID: suite.restaurantID,
		Number:       "5",
		Status:       models.TableOccupied,
	}
	order := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusServed,
	}

	suite.tables.On("GetByID", suite.ctx, suite.restaurantID, suite.tableID).Return(table, nil)
	suite.orders.On("ListByTableAndStatuses", suite.ctx, suite.restaurantID, suite.tableID,
		models.ActiveStatuses()).Return([]*models.Order{order}, nil)
	suite.orders.On("UpdateStatus", suite.ctx, order.ID, models.StatusPaymentRequested).Return(nil)
	suite.stations.On("UpdateStatusByOrder", suite.ctx, order.ID, models.StatusPaymentRequested).Return(nil)
	suite.notifier.On("NotifyRole", suite.ctx, suite.restaurantID, models.RoleWaiter,
		"Payment requested at Table 5.", models.NotificationTypeBilling).Return(nil)

	orders, err := suite.service.RequestPaymentByTable(suite.ctx, suite.restaurantID, suite.tableID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
	assert.Equal(suite.T(), models.StatusPaymentRequested, orders[0].Status)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestRequestPaymentByTable_NoActiveOrders() {
	table := &models.Table{
		ID:           suite.tableID,
		RestaurantID: suite.restaurantID,
		Number:       "7",
		Status:       models.TableAvailable,
	}
	suite.tables.On("GetByID", suite.ctx, suite.restaurantID, suite.tableID).Return(table, nil)
	suite.orders.On("ListByTableAndStatuses", suite.ctx, suite.restaurantID, suite.tableID,
		models.ActiveStatuses()).Return([]*models.Order{}, nil)

	orders, err := suite.service.RequestPaymentByTable(suite.ctx, suite.restaurantID, suite.tableID)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), orders)
}

func (suite *BillingServiceTestSuite) TestGenerateBill_SumsItemsAndReleasesTable() {
	steak := &models.MenuItem{ID: uuid.New(), Name: "Steak", Price: 12.50, Destination: models.DestinationKitchen}
	mojito := &models.MenuItem{ID: uuid.New(), Name: "Mojito", Price: 7.25, Destination: models.DestinationBar}

	order := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusPaymentRequested,
	}
	items := []*models.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, Quantity: 1, MenuItem: steak},
		{ID: uuid.New(), OrderID: order.ID, Quantity: 1, MenuItem: mojito},
	}

	suite.orders.On("ListByIDs", suite.ctx, suite.restaurantID, []uuid.UUID{order.ID}).
		Return([]*models.Order{order}, nil)
	suite.items.On("ListByOrder", suite.ctx, order.ID).Return(items, nil)
	suite.orders.On("UpdateStatus", suite.ctx, order.ID, models.StatusPaid).Return(nil)
	suite.stations.On("UpdateStatusByOrder", suite.ctx, order.ID, models.StatusPaid).Return(nil)
	suite.tables.On("UpdateStatus", suite.ctx, suite.tableID, models.TableAvailable).Return(nil)
	suite.bills.On("Create", suite.ctx, mock.MatchedBy(func(b *models.Bill) bool {
		return b.Total == 19.75 && len(b.OrderIDs) == 1
	})).Return(nil)
	suite.notifier.On("NotifyRole", suite.ctx, suite.restaurantID, models.RoleWaiter,
		"Bill of 19.75 settled for 1 order(s).", models.NotificationTypeBilling).Return(nil)

	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, []uuid.UUID{order.ID}, nil)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), bill)
	assert.Equal(suite.T(), 19.75, bill.Total)
	suite.tables.AssertExpectations(suite.T())
	suite.bills.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestGenerateBill_UnknownOrders() {
	unknown := uuid.New()
	suite.orders.On("ListByIDs", suite.ctx, suite.restaurantID, []uuid.UUID{unknown}).
		Return([]*models.Order{}, nil)

	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, []uuid.UUID{unknown}, nil)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), bill)
}

func (suite *BillingServiceTestSuite) TestGenerateBill_SkipsCancelledOrder() {
	steak := &models.MenuItem{ID: uuid.New(), Name: "Steak", Price: 12.50, Destination: models.DestinationKitchen}
	cancelled := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusCancelled,
	}
	served := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusServed,
	}
	ids := []uuid.UUID{cancelled.ID, served.ID}

	suite.orders.On("ListByIDs", suite.ctx, suite.restaurantID, ids).
		Return([]*models.Order{cancelled, served}, nil)
	suite.items.On("ListByOrder", suite.ctx, served.ID).Return([]*models.OrderItem{
		{ID: uuid.New(), OrderID: served.ID, Quantity: 2, MenuItem: steak},
	}, nil)
	suite.orders.On("UpdateStatus", suite.ctx, served.ID, models.StatusPaid).Return(nil)
	suite.stations.On("UpdateStatusByOrder", suite.ctx, served.ID, models.StatusPaid).Return(nil)
	suite.tables.On("UpdateStatus", suite.ctx, suite.tableID, models.TableAvailable).Return(nil)
	suite.bills.On("Create", suite.ctx, mock.MatchedBy(func(b *models.Bill) bool {
		return b.Total == 25.0 && len(b.OrderIDs) == 1 && b.OrderIDs[0] == served.ID
	})).Return(nil)
	suite.notifier.On("NotifyRole", suite.ctx, suite.restaurantID, models.RoleWaiter,
		"Bill of 25.00 settled for 1 order(s).", models.NotificationTypeBilling).Return(nil)

	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, ids, nil)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 25.0, bill.Total)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", suite.ctx, cancelled.ID, models.StatusPaid)
	suite.items.AssertNotCalled(suite.T(), "ListByOrder", suite.ctx, cancelled.ID)
	suite.bills.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestGenerateBill_OnlyTerminalOrders() {
	cancelled := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusCancelled,
	}
	suite.orders.On("ListByIDs", suite.ctx, suite.restaurantID, []uuid.UUID{cancelled.ID}).
		Return([]*models.Order{cancelled}, nil)

	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, []uuid.UUID{cancelled.ID}, nil)

	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	assert.Nil(suite.T(), bill)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	suite.tables.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestGenerateBill_EmptyInput() {
	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, nil, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.Nil(suite.T(), bill)
}

func (suite *BillingServiceTestSuite) TestGenerateBill_CarriesBreakdown() {
	order := &models.Order{
		ID:           uuid.New(),
		RestaurantID: suite.restaurantID,
		TableID:      suite.tableID,
		Status:       models.StatusServed,
	}
	suite.orders.On("ListByIDs", suite.ctx, suite.restaurantID, []uuid.UUID{order.ID}).
		Return([]*models.Order{order}, nil)
	suite.items.On("ListByOrder", suite.ctx, order.ID).Return([]*models.OrderItem{}, nil)
	suite.orders.On("UpdateStatus", suite.ctx, order.ID, models.StatusPaid).Return(nil)
	suite.stations.On("UpdateStatusByOrder", suite.ctx, order.ID, models.StatusPaid).Return(nil)
	suite.tables.On("UpdateStatus", suite.ctx, suite.tableID, models.TableAvailable).Return(nil)
	suite.bills.On("Create", suite.ctx, mock.AnythingOfType("*models.Bill")).Return(nil)
	suite.notifier.On("NotifyRole", suite.ctx, suite.restaurantID, models.RoleWaiter,
		mock.AnythingOfType("string"), models.NotificationTypeBilling).Return(nil)

	tax := 1.50
	tip := 2.00
	last4 := "4242"
	bill, err := suite.service.GenerateBill(suite.ctx, suite.restaurantID, []uuid.UUID{order.ID}, &models.BillBreakdown{
		Tax:       &tax,
		Tip:       &tip,
		CardLast4: &last4,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), &tax, bill.Tax)
	assert.Equal(suite.T(), &tip, bill.Tip)
	assert.Equal(suite.T(), &last4, bill.CardLast4)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
