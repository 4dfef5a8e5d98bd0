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

func newSubmissionFixture(t *testing.T) (SubmissionService, NotificationService, GradeService, repository.CourseRepository) {
	t.Helper()
	kv := store.NewMemoryStore()
	courses := repository.NewCourseRepository(kv, zerolog.Nop())
	journal := repository.NewJournalRepository(kv, zerolog.Nop())
	notifications := NewNotificationService(repository.NewNotificationRepository(kv, zerolog.Nop()), zerolog.Nop())
	grades := NewGradeService(repository.NewGradeRepository(kv, zerolog.Nop()), journal, zerolog.Nop())
	submissions := NewSubmissionService(repository.NewSubmissionRepository(kv, zerolog.Nop()), courses, journal, notifications, zerolog.Nop())
	return submissions, notifications, grades, courses
}

func TestSubmitCreatesPendingSubmission(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)
	ctx := context.Background()

	submission, err := svc.Submit(ctx, SubmissionInput{
		StudentID: 3,
		CourseID:  "algorithms",
		LessonID:  1,
		TaskID:    2,
		Code:      "print('hello')",
	})
	require.NoError(t, err)
	require.NotEmpty(t, submission.ID)
	require.Equal(t, models.SubmissionStatusPending, submission.Status)
	require.Equal(t, 100, submission.Originality)
	require.Equal(t, models.AICheckPassed, submission.AICheck)
	require.False(t, submission.SubmittedAt.IsZero())

	mine := svc.ListByStudent(ctx, 3)
	require.Len(t, mine, 1)
}

func TestSubmitRejectsBlankCode(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	_, err := svc.Submit(context.Background(), SubmissionInput{StudentID: 3, CourseID: "algorithms", Code: "   \n"})
	require.ErrorIs(t, err, ErrEmptyCode)
}

func TestSubmitNotifiesAssignedTeacher(t *testing.T) {
	svc, notifications, _, courses := newSubmissionFixture(t)
	ctx := context.Background()

	teacherID := int64(7)
	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms", TeacherID: &teacherID})

	_, err := svc.Submit(ctx, SubmissionInput{StudentID: 3, CourseID: "algorithms", LessonID: 1, TaskID: 1, Code: "x = 1"})
	require.NoError(t, err)

	feed := notifications.List(ctx, teacherID)
	require.Len(t, feed, 1)
	require.Equal(t, models.NotificationTypeSubmission, feed[0].Type)

	// Without an assigned teacher nothing is sent.
	_, err = svc.Submit(ctx, SubmissionInput{StudentID: 3, CourseID: "unassigned", LessonID: 1, TaskID: 1, Code: "x = 1"})
	require.NoError(t, err)
	require.Len(t, notifications.List(ctx, teacherID), 1)
}

func TestGradeUpdatesJournalAndNotifiesStudent(t *testing.T) {
	svc, notifications, grades, _ := newSubmissionFixture(t)
	ctx := context.Background()

	submission, err := svc.Submit(ctx, SubmissionInput{StudentID: 3, CourseID: "algorithms", LessonID: 1, TaskID: 2, Code: "print(42)"})
	require.NoError(t, err)

	graded, err := svc.Grade(ctx, submission.ID, 85, "solid work")
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, graded.Status)
	require.Equal(t, 85, graded.Score)
	require.Equal(t, "solid work", graded.Feedback)

	entry := grades.JournalEntry(ctx, 3, "algorithms", 1)
	require.EqualValues(t, 85, entry["taskGrade"])

	feed := notifications.List(ctx, 3)
	require.Len(t, feed, 1)
	require.Equal(t, models.NotificationTypeGrade, feed[0].Type)
	require.Equal(t, "New grade in the journal", feed[0].Title)
}

func TestGradeUnknownSubmission(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	_, err := svc.Grade(context.Background(), "missing", 50, "")
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestListByTaskFiltersExactly(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)
	ctx := context.Background()

	for _, input := range []SubmissionInput{
		{StudentID: 3, CourseID: "algorithms", LessonID: 1, TaskID: 1, Code: "a"},
		{StudentID: 4, CourseID: "algorithms", LessonID: 1, TaskID: 1, Code: "b"},
		{StudentID: 3, CourseID: "algorithms", LessonID: 1, TaskID: 2, Code: "c"},
		{StudentID: 3, CourseID: "python", LessonID: 1, TaskID: 1, Code: "d"},
	} {
		_, err := svc.Submit(ctx, input)
		require.NoError(t, err)
	}

	require.Len(t, svc.ListByTask(ctx, "algorithms", 1, 1), 2)
	require.Len(t, svc.ListByTask(ctx, "algorithms", 1, 2), 1)
	require.Empty(t, svc.ListByTask(ctx, "python", 2, 1))
}
