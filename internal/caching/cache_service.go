package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tablemate/internal/models"
)

// Cache TTLs. Menu reads dominate traffic (every guest device polls the
// menu); unread counts change often and stay short-lived.
const (
	MenuItemsTTL   = 5 * time.Minute
	UnreadCountTTL = 30 * time.Second
)

type CacheService interface {
	// Menu caching
	GetMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, bool, error)
	SetMenuItems(ctx context.Context, restaurantID uuid.UUID, items []*models.MenuItem, ttl time.Duration) error
	DeleteMenuItems(ctx context.Context, restaurantID uuid.UUID) error

	// Unread notification count caching
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, bool, error)
	SetUnreadCount(ctx context.Context, userID uuid.UUID, count int, ttl time.Duration) error
	DeleteUnreadCount(ctx context.Context, userID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func menuKey(restaurantID uuid.UUID) string {
	return fmt.Sprintf("tablemate:menu:%s", restaurantID.String())
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("tablemate:unread:%s", userID.String())
}

func (r *redisCacheService) GetMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, bool, error) {
	data, err := r.client.Get(ctx, menuKey(restaurantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, err
	}

	var items []*models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (r *redisCacheService) SetMenuItems(ctx context.Context, restaurantID uuid.UUID, items []*models.MenuItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, menuKey(restaurantID), data, ttl).Err()
}

func (r *redisCacheService) DeleteMenuItems(ctx context.Context, restaurantID uuid.UUID) error {
	return r.client.Del(ctx, menuKey(restaurantID)).Err()
}

func (r *redisCacheService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	raw, err := r.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (r *redisCacheService) SetUnreadCount(ctx context.Context, userID uuid.UUID, count int, ttl time.Duration) error {
	return r.client.Set(ctx, unreadKey(userID), strconv.Itoa(count), ttl).Err()
}

func (r *redisCacheService) DeleteUnreadCount(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, unreadKey(userID)).Err()
}
