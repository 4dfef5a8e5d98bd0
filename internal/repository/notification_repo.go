package repository

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// NotificationRepository owns the per-user notification feeds. Each feed is
// kept most-recent-first; new notifications are prepended.
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID int64) []models.Notification
	Prepend(ctx context.Context, notification models.Notification)
	MarkRead(ctx context.Context, userID int64, id string) bool
	UnreadCount(ctx context.Context, userID int64) int
}

type notificationRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewNotificationRepository constructs a repository over the given store.
func NewNotificationRepository(kv store.Store, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		kv:     kv,
		logger: logger.With().Str("component", "notification_repository").Logger(),
	}
}

func feedKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (r *notificationRepository) feeds(ctx context.Context) map[string][]models.Notification {
	feeds := readCollection[map[string][]models.Notification](ctx, r.kv, keyNotifications, r.logger)
	if feeds == nil {
		feeds = make(map[string][]models.Notification)
	}
	return feeds
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) []models.Notification {
	return r.feeds(ctx)[feedKey(userID)]
}

func (r *notificationRepository) Prepend(ctx context.Context, notification models.Notification) {
	feeds := r.feeds(ctx)
	key := feedKey(notification.UserID)
	feeds[key] = append([]models.Notification{notification}, feeds[key]...)
	writeCollection(ctx, r.kv, keyNotifications, feeds, r.logger)
}

// MarkRead flips the read flag within that user's feed only. Returns false
// when the notification is not found; callers treat that as a no-op.
func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, id string) bool {
	feeds := r.feeds(ctx)
	feed := feeds[feedKey(userID)]
	for i := range feed {
		if feed[i].ID == id {
			if feed[i].Read {
				return true
			}
			feed[i].Read = true
			writeCollection(ctx, r.kv, keyNotifications, feeds, r.logger)
			return true
		}
	}
	return false
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int64) int {
	count := 0
	for _, notification := range r.ListByUser(ctx, userID) {
		if !notification.Read {
			count++
		}
	}
	return count
}
