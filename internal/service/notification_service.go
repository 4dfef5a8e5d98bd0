package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/observability"
	"github.com/educode-platform/educode-api/internal/repository"
)

// ErrEmptyMessage indicates the notification message was empty after sanitization.
var ErrEmptyMessage = errors.New("notification message empty after sanitization")

// NotificationInput describes a notification to add to a user's feed.
type NotificationInput struct {
	UserID   int64
	Type     string
	Title    string
	Message  string
	CourseID string
	LessonID int
}

// NotificationService manages per-user notification feeds.
type NotificationService interface {
	Add(ctx context.Context, input NotificationInput) (models.Notification, error)
	List(ctx context.Context, userID int64) []models.Notification
	MarkRead(ctx context.Context, userID int64, id string)
	UnreadCount(ctx context.Context, userID int64) int
}

type notificationService struct {
	repo      repository.NotificationRepository
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewNotificationService constructs a notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "notification_service").Logger(),
		now:       time.Now,
	}
}

func (s *notificationService) Add(ctx context.Context, input NotificationInput) (models.Notification, error) {
	message := strings.TrimSpace(s.sanitizer.Sanitize(input.Message))
	if message == "" {
		return models.Notification{}, ErrEmptyMessage
	}

	notification := models.Notification{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     strings.TrimSpace(s.sanitizer.Sanitize(input.Title)),
		Message:   message,
		CourseID:  input.CourseID,
		LessonID:  input.LessonID,
		CreatedAt: s.now().UTC(),
		Read:      false,
	}

	s.repo.Prepend(ctx, notification)
	observability.NotificationsPublished().WithLabelValues(notification.Type).Inc()

	s.logger.Debug().
		Int64("user_id", notification.UserID).
		Str("type", notification.Type).
		Msg("notification added")

	return notification, nil
}

func (s *notificationService) List(ctx context.Context, userID int64) []models.Notification {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead no-ops when the notification does not exist in that user's feed.
func (s *notificationService) MarkRead(ctx context.Context, userID int64, id string) {
	if !s.repo.MarkRead(ctx, userID, id) {
		s.logger.Debug().Int64("user_id", userID).Str("id", id).Msg("mark read skipped unknown notification")
	}
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) int {
	return s.repo.UnreadCount(ctx, userID)
}
