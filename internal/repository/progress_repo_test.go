package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

func TestProgressRepositorySetAndGet(t *testing.T) {
	repo := NewProgressRepository(store.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	_, ok := repo.Get(ctx, 3, "algorithms", 1)
	require.False(t, ok)

	repo.Set(ctx, 3, "algorithms", 1, models.LessonProgress{
		Unlocked:          true,
		SectionsCompleted: models.SectionFlags{Video: true},
	})

	record, ok := repo.Get(ctx, 3, "algorithms", 1)
	require.True(t, ok)
	require.True(t, record.Unlocked)
	require.True(t, record.SectionsCompleted.Video)
	require.False(t, record.Completed)

	// Records are scoped by user and course.
	_, ok = repo.Get(ctx, 4, "algorithms", 1)
	require.False(t, ok)
	_, ok = repo.Get(ctx, 3, "python", 1)
	require.False(t, ok)
}

func TestProgressRepositoryCourse(t *testing.T) {
	repo := NewProgressRepository(store.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	require.Empty(t, repo.Course(ctx, 3, "algorithms"))

	repo.Set(ctx, 3, "algorithms", 1, models.LessonProgress{Unlocked: true, Completed: true})
	repo.Set(ctx, 3, "algorithms", 2, models.LessonProgress{Unlocked: true})

	course := repo.Course(ctx, 3, "algorithms")
	require.Len(t, course, 2)
	require.True(t, course[1].Completed)
	require.False(t, course[2].Completed)
}

func TestJournalRepositoryMerge(t *testing.T) {
	repo := NewJournalRepository(store.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	require.Nil(t, repo.Get(ctx, 3, "algorithms", 1))

	entry := repo.Merge(ctx, 3, "algorithms", 1, models.JournalEntry{"taskGrade": 85})
	require.EqualValues(t, 85, entry["taskGrade"])

	// A later merge keeps unrelated fields. Numbers come back as float64
	// after the JSON round trip.
	entry = repo.Merge(ctx, 3, "algorithms", 1, models.JournalEntry{"comment": "well done"})
	require.Equal(t, "well done", entry["comment"])
	require.EqualValues(t, 85, entry["taskGrade"])
}
