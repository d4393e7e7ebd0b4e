package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus marks a notification as read or unread.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification type tags.
const (
	NotificationTypeOrder   = "order"
	NotificationTypeBilling = "billing"
	NotificationTypeStock   = "stock"
)

// Notification is a durable per-user message. Created by the fan-out,
// mutated only by the read-marking operations, never system-deleted. The
// realtime push that accompanies it is best-effort.
type Notification struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Message   string             `json:"message"`
	Type      string             `json:"type"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// NotificationEvent is the realtime payload pushed alongside a persisted
// notification.
type NotificationEvent struct {
	Message string             `json:"message"`
	Status  NotificationStatus `json:"status"`
}
