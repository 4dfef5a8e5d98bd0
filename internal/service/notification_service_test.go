package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/store"
)

func newNotificationService(t *testing.T) NotificationService {
	t.Helper()
	repo := repository.NewNotificationRepository(store.NewMemoryStore(), zerolog.Nop())
	return NewNotificationService(repo, zerolog.Nop())
}

func TestNotificationAddPrependsNewestFirst(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, NotificationInput{UserID: 3, Type: models.NotificationTypeSubmission, Message: "first"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.False(t, first.Read)

	second, err := svc.Add(ctx, NotificationInput{UserID: 3, Type: models.NotificationTypeGrade, Message: "second"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	feed := svc.List(ctx, 3)
	require.Len(t, feed, 2)
	require.Equal(t, second.ID, feed[0].ID)
	require.Equal(t, first.ID, feed[1].ID)
}

func TestNotificationAddStripsMarkup(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	notification, err := svc.Add(ctx, NotificationInput{
		UserID:  3,
		Type:    models.NotificationTypeGrade,
		Title:   "<b>Grade</b>",
		Message: `<script>alert("x")</script>New grade in the journal`,
	})
	require.NoError(t, err)
	require.Equal(t, "Grade", notification.Title)
	require.Equal(t, "New grade in the journal", notification.Message)
}

func TestNotificationAddRejectsEmptyMessage(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, NotificationInput{UserID: 3, Message: "   "})
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Add(ctx, NotificationInput{UserID: 3, Message: "<img src=x>"})
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestNotificationMarkReadAndUnreadCount(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, NotificationInput{UserID: 3, Type: models.NotificationTypeSubmission, Message: "New solution submitted"})
	require.NoError(t, err)
	require.Equal(t, 1, svc.UnreadCount(ctx, 3))

	svc.MarkRead(ctx, 3, added.ID)
	require.Equal(t, 0, svc.UnreadCount(ctx, 3))

	// Marking an unknown id is a no-op.
	svc.MarkRead(ctx, 3, "missing")
	require.Equal(t, 0, svc.UnreadCount(ctx, 3))
}
