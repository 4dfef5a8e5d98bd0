package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/store"
)

func newAssignmentFixture(t *testing.T) (AssignmentService, GroupService, repository.UserRepository, repository.CourseRepository) {
	t.Helper()
	kv := store.NewMemoryStore()
	users := repository.NewUserRepository(kv, zerolog.Nop())
	courses := repository.NewCourseRepository(kv, zerolog.Nop())
	groups := repository.NewGroupRepository(kv, zerolog.Nop())

	groupService := NewGroupService(groups, zerolog.Nop())
	assignmentService := NewAssignmentService(
		repository.NewTeacherAssignmentRepository(kv, zerolog.Nop()),
		repository.NewLessonAssignmentRepository(kv, zerolog.Nop()),
		users, courses, groups, zerolog.Nop(),
	)
	return assignmentService, groupService, users, courses
}

func TestAssignTeacherValidatesRoleAndTargets(t *testing.T) {
	svc, groupService, users, courses := newAssignmentFixture(t)
	ctx := context.Background()

	users.Create(ctx, models.User{ID: 7, Email: "teacher@educode.com", Role: models.RoleTeacher})
	users.Create(ctx, models.User{ID: 3, Email: "student@educode.com", Role: models.RoleStudent})
	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms"})
	group, err := groupService.Create(ctx, "Group A", nil, []int64{3})
	require.NoError(t, err)

	assignment, err := svc.AssignTeacher(ctx, 7, "algorithms", group.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), assignment.TeacherID)
	require.Len(t, svc.ListTeacherAssignments(ctx), 1)

	_, err = svc.AssignTeacher(ctx, 3, "algorithms", group.ID)
	require.ErrorIs(t, err, ErrTeacherRequired)
	_, err = svc.AssignTeacher(ctx, 99, "algorithms", group.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.AssignTeacher(ctx, 7, "missing", group.ID)
	require.ErrorIs(t, err, ErrCourseNotFound)
	_, err = svc.AssignTeacher(ctx, 7, "algorithms", 12345)
	require.ErrorIs(t, err, ErrGroupNotFound)

	require.NoError(t, svc.UnassignTeacher(ctx, assignment.ID))
	require.ErrorIs(t, svc.UnassignTeacher(ctx, assignment.ID), ErrAssignmentNotFound)
}

func TestScheduleLessonStatusFollowsDueDate(t *testing.T) {
	svc, groupService, _, courses := newAssignmentFixture(t)
	ctx := context.Background()

	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms", Lessons: []models.Lesson{{ID: 1, Title: "Variables"}}})
	group, err := groupService.Create(ctx, "Group A", nil, nil)
	require.NoError(t, err)

	future, err := svc.ScheduleLesson(ctx, "algorithms", 1, group.ID, time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	require.Equal(t, models.LessonAssignmentStatusScheduled, future.Status)

	// Ids are unix-millisecond surrogates; space the calls out so they differ.
	time.Sleep(2 * time.Millisecond)

	past, err := svc.ScheduleLesson(ctx, "algorithms", 1, group.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, models.LessonAssignmentStatusActive, past.Status)

	_, err = svc.ScheduleLesson(ctx, "algorithms", 9, group.ID, time.Now())
	require.ErrorIs(t, err, ErrLessonNotFound)

	closed := models.LessonAssignmentStatusClosed
	updated, err := svc.UpdateLessonAssignment(ctx, past.ID, repository.LessonAssignmentPatch{Status: &closed})
	require.NoError(t, err)
	require.Equal(t, models.LessonAssignmentStatusClosed, updated.Status)

	require.NoError(t, svc.RemoveLessonAssignment(ctx, past.ID))
	require.ErrorIs(t, svc.RemoveLessonAssignment(ctx, past.ID), ErrAssignmentNotFound)
}

func TestGroupServiceCRUD(t *testing.T) {
	_, groupService, _, _ := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := groupService.Create(ctx, "   ", nil, nil)
	require.ErrorIs(t, err, ErrEmptyName)

	group, err := groupService.Create(ctx, "Group A", nil, []int64{3, 4})
	require.NoError(t, err)
	require.NotZero(t, group.ID)

	newName := "Group B"
	updated, err := groupService.Update(ctx, group.ID, repository.GroupPatch{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Group B", updated.Name)
	require.Equal(t, []int64{3, 4}, updated.StudentIDs)

	require.NoError(t, groupService.Delete(ctx, group.ID))
	require.ErrorIs(t, groupService.Delete(ctx, group.ID), ErrGroupNotFound)
}
