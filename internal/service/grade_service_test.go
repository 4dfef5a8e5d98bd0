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

func newGradeService(t *testing.T) GradeService {
	t.Helper()
	kv := store.NewMemoryStore()
	return NewGradeService(
		repository.NewGradeRepository(kv, zerolog.Nop()),
		repository.NewJournalRepository(kv, zerolog.Nop()),
		zerolog.Nop(),
	)
}

func TestSaveGradeDerivesPercentageAndStatus(t *testing.T) {
	svc := newGradeService(t)
	ctx := context.Background()

	record, err := svc.SaveGrade(ctx, 3, "algorithms", 1, 70, 100)
	require.NoError(t, err)
	require.Equal(t, 70, record.Percentage)
	require.Equal(t, models.GradeStatusPassed, record.Status)
	require.False(t, record.CompletedAt.IsZero())

	record, err = svc.SaveGrade(ctx, 3, "algorithms", 2, 69, 100)
	require.NoError(t, err)
	require.Equal(t, models.GradeStatusFailed, record.Status)

	// Rounding: 7/9 is 77.78 percent, but pass/fail follows the raw grade.
	record, err = svc.SaveGrade(ctx, 3, "algorithms", 3, 7, 9)
	require.NoError(t, err)
	require.Equal(t, 78, record.Percentage)
	require.Equal(t, models.GradeStatusFailed, record.Status)
}

func TestSaveGradeOverwritesPrevious(t *testing.T) {
	svc := newGradeService(t)
	ctx := context.Background()

	_, err := svc.SaveGrade(ctx, 3, "algorithms", 1, 50, 100)
	require.NoError(t, err)
	_, err = svc.SaveGrade(ctx, 3, "algorithms", 1, 90, 100)
	require.NoError(t, err)

	record, ok := svc.Grade(ctx, 3, "algorithms", 1)
	require.True(t, ok)
	require.Equal(t, 90, record.Grade)
	require.Equal(t, models.GradeStatusPassed, record.Status)
}

func TestSaveGradeRejectsOutOfRange(t *testing.T) {
	svc := newGradeService(t)
	ctx := context.Background()

	for _, tc := range []struct{ grade, max int }{
		{grade: 5, max: 0},
		{grade: -1, max: 10},
		{grade: 11, max: 10},
	} {
		_, err := svc.SaveGrade(ctx, 3, "algorithms", 1, tc.grade, tc.max)
		require.ErrorIs(t, err, ErrInvalidGrade)
	}
}

func TestSaveJournalEntryMergesAndStampsUpdatedAt(t *testing.T) {
	svc := newGradeService(t)
	ctx := context.Background()

	entry := svc.SaveJournalEntry(ctx, 3, "algorithms", 1, models.JournalEntry{"comment": "good work"})
	require.Equal(t, "good work", entry["comment"])
	require.NotEmpty(t, entry["updatedAt"])

	entry = svc.SaveJournalEntry(ctx, 3, "algorithms", 1, models.JournalEntry{"taskGrade": 95})
	require.EqualValues(t, 95, entry["taskGrade"])
	require.Equal(t, "good work", entry["comment"])

	stored := svc.JournalEntry(ctx, 3, "algorithms", 1)
	require.Equal(t, "good work", stored["comment"])

	course := svc.CourseJournal(ctx, 3, "algorithms")
	require.Contains(t, course, 1)
}
