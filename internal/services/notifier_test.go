package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"tablemate/internal/models"
)

// fakePusher records push attempts instead of holding real connections.
type fakePusher struct {
	pushed    []uuid.UUID
	connected map[uuid.UUID]bool
}

func (f *fakePusher) PushToUser(userID uuid.UUID, event string, payload any) bool {
	f.pushed = append(f.pushed, userID)
	return f.connected[userID]
}

type NotifierTestSuite struct {
	suite.Suite
	notifications *MockNotificationRepository
	users         *MockUserRepository
	pusher        *fakePusher
	notifier      Notifier
	ctx           context.Context
	restaurantID  uuid.UUID
}

func (suite *NotifierTestSuite) SetupTest() {
	suite.notifications = &MockNotificationRepository{}
	suite.users = &MockUserRepository{}
	suite.pusher = &fakePusher{connected: map[uuid.UUID]bool{}}
	suite.notifier = NewNotifier(suite.notifications, suite.users, suite.pusher)
	suite.ctx = context.Background()
	suite.restaurantID = uuid.New()
}

func (suite *NotifierTestSuite) TestNotifyRole_PersistsAndPushesPerRecipient() {
	waiters := []*models.User{
		{ID: uuid.New(), RestaurantID: suite.restaurantID, Role: models.RoleWaiter},
		{ID: uuid.New(), RestaurantID: suite.restaurantID, Role: models.RoleWaiter},
	}
	suite.pusher.connected[waiters[0].ID] = true // only the first is online

	suite.users.On("ListByRestaurantAndRole", suite.ctx, suite.restaurantID, models.RoleWaiter).
		Return(waiters, nil)
	suite.notifications.On("Create", suite.ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Message == "Order for Table 5 is ready." && n.Status == models.NotificationUnread
	})).Return(nil).Twice()

	err := suite.notifier.NotifyRole(suite.ctx, suite.restaurantID, models.RoleWaiter,
		"Order for Table 5 is ready.", models.NotificationTypeOrder)

	assert.NoError(suite.T(), err)
	// Push is attempted for every recipient; offline recipients still get
	// the durable row.
	assert.Equal(suite.T(), []uuid.UUID{waiters[0].ID, waiters[1].ID}, suite.pusher.pushed)
	suite.notifications.AssertExpectations(suite.T())
}

func (suite *NotifierTestSuite) TestNotifyRole_OnePersistFailureDoesNotStarveRest() {
	waiters := []*models.User{
		{ID: uuid.New(), RestaurantID: suite.restaurantID, Role: models.RoleWaiter},
		{ID: uuid.New(), RestaurantID: suite.restaurantID, Role: models.RoleWaiter},
	}
	suite.users.On("ListByRestaurantAndRole", suite.ctx, suite.restaurantID, models.RoleWaiter).
		Return(waiters, nil)
	suite.notifications.On("Create", suite.ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == waiters[0].ID
	})).Return(errors.New("insert failed"))
	suite.notifications.On("Create", suite.ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == waiters[1].ID
	})).Return(nil)

	err := suite.notifier.NotifyRole(suite.ctx, suite.restaurantID, models.RoleWaiter,
		"Payment requested at Table 5.", models.NotificationTypeBilling)

	assert.NoError(suite.T(), err)
	suite.notifications.AssertExpectations(suite.T())
	// The failed recipient was never pushed to: no row, no push.
	assert.Equal(suite.T(), []uuid.UUID{waiters[1].ID}, suite.pusher.pushed)
}

func (suite *NotifierTestSuite) TestNotifyRole_AudienceLookupFails() {
	suite.users.On("ListByRestaurantAndRole", suite.ctx, suite.restaurantID, models.RoleManager).
		Return([]*models.User{}, errors.New("db down"))

	err := suite.notifier.NotifyRole(suite.ctx, suite.restaurantID, models.RoleManager,
		"Low stock: Mojito has 2 unit(s) left.", models.NotificationTypeStock)

	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), suite.pusher.pushed)
}

func (suite *NotifierTestSuite) TestNotifyUser_PersistFailureSkipsPush() {
	userID := uuid.New()
	suite.notifications.On("Create", suite.ctx, mock.AnythingOfType("*models.Notification")).
		Return(errors.New("insert failed"))

	err := suite.notifier.NotifyUser(suite.ctx, userID, "hello", models.NotificationTypeOrder)

	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), suite.pusher.pushed)
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}
