package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tablemate/internal/caching"
	"tablemate/internal/models"
	"tablemate/internal/repositories"
)

// NotificationService is the read side of the notification store: the
// durable, pollable complement to the realtime push.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	cacheService     caching.CacheService
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, cacheService caching.CacheService) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		cacheService:     cacheService,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if count, ok, err := s.cacheService.GetUnreadCount(ctx, userID); err == nil && ok {
		return count, nil
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.cacheService.SetUnreadCount(ctx, userID, count, caching.UnreadCountTTL); err != nil {
		log.Printf("notification service: cache unread count: %v", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	s.invalidateCount(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	s.invalidateCount(ctx, userID)
	return nil
}

func (s *notificationService) invalidateCount(ctx context.Context, userID uuid.UUID) {
	if err := s.cacheService.DeleteUnreadCount(ctx, userID); err != nil {
		log.Printf("notification service: invalidate unread count: %v", err)
	}
}
