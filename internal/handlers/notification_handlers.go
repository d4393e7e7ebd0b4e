package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/services"
)

// NotificationHandlers handles HTTP requests for the durable notification
// feed; realtime push goes over the websocket hub.
type NotificationHandlers struct {
	notificationService services.NotificationService
}

func NewNotificationHandlers(notificationService services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{
		notificationService: notificationService,
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	notifications, err := h.notificationService.List(ctx, userID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

// GetUnreadCount handles GET /notifications/unread-count
func (h *NotificationHandlers) GetUnreadCount(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	count, err := h.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{
		"unread_count": count,
	})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	notificationID, err := common.ValidateUUID(c.Param("id"), "notification_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.notificationService.MarkRead(ctx, userID, notificationID); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Notification marked as read",
	})
}

// MarkAllRead handles POST /notifications/read-all
func (h *NotificationHandlers) MarkAllRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.notificationService.MarkAllRead(ctx, userID); err != nil {
		return common.SendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "All notifications marked as read",
	})
}
