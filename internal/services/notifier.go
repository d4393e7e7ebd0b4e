package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// Pusher is the narrow realtime capability the fan-out depends on. It never
// sees the connection registry's internals.
type Pusher interface {
	PushToUser(userID uuid.UUID, event string, payload any) bool
}

// Notifier resolves a staff audience by restaurant and role, persists one
// notification per recipient, and attempts a best-effort realtime push to
// each connected recipient. No retries, no acknowledgement, no ordering
// guarantee across recipients.
type Notifier interface {
	NotifyRole(ctx context.Context, restaurantID uuid.UUID, role models.Role, message, notificationType string) error
	NotifyUser(ctx context.Context, userID uuid.UUID, message, notificationType string) error
}

type notifier struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	pusher           Pusher
}

func NewNotifier(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, pusher Pusher) Notifier {
	return &notifier{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pusher:           pusher,
	}
}

func (n *notifier) NotifyRole(ctx context.Context, restaurantID uuid.UUID, role models.Role, message, notificationType string) error {
	users, err := n.userRepo.ListByRestaurantAndRole(ctx, restaurantID, role)
	if err != nil {
		return fmt.Errorf("resolve %s audience: %w", role, err)
	}
	for _, user := range users {
		if err := n.NotifyUser(ctx, user.ID, message, notificationType); err != nil {
			// Persistence is the durable source of truth; a failed row for
			// one recipient must not starve the rest of the audience.
			log.Printf("notifier: persist notification for user %s: %v", user.ID, err)
		}
	}
	return nil
}

func (n *notifier) NotifyUser(ctx context.Context, userID uuid.UUID, message, notificationType string) error {
	notification := &models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Type:    notificationType,
		Status:  models.NotificationUnread,
	}
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	n.pusher.PushToUser(userID, "notification", models.NotificationEvent{
		Message: message,
		Status:  models.NotificationUnread,
	})
	return nil
}
