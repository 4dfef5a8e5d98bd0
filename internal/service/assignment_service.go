package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Assignment failure sentinels.
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrTeacherRequired    = errors.New("the assignee must have the teacher role")
)

// AssignmentService manages teacher-to-subject bindings and lesson schedules.
type AssignmentService interface {
	ListTeacherAssignments(ctx context.Context) []models.TeacherAssignment
	AssignTeacher(ctx context.Context, teacherID int64, subjectID string, groupID int64) (models.TeacherAssignment, error)
	UnassignTeacher(ctx context.Context, id int64) error

	ListLessonAssignments(ctx context.Context) []models.LessonAssignment
	ScheduleLesson(ctx context.Context, courseID string, lessonID int, groupID int64, dueDate time.Time) (models.LessonAssignment, error)
	UpdateLessonAssignment(ctx context.Context, id int64, patch repository.LessonAssignmentPatch) (models.LessonAssignment, error)
	RemoveLessonAssignment(ctx context.Context, id int64) error
}

type assignmentService struct {
	teacherAssignments repository.TeacherAssignmentRepository
	lessonAssignments  repository.LessonAssignmentRepository
	users              repository.UserRepository
	courses            repository.CourseRepository
	groups             repository.GroupRepository
	logger             zerolog.Logger
	now                func() time.Time
}

// NewAssignmentService constructs an assignment service.
func NewAssignmentService(
	teacherAssignments repository.TeacherAssignmentRepository,
	lessonAssignments repository.LessonAssignmentRepository,
	users repository.UserRepository,
	courses repository.CourseRepository,
	groups repository.GroupRepository,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		teacherAssignments: teacherAssignments,
		lessonAssignments:  lessonAssignments,
		users:              users,
		courses:            courses,
		groups:             groups,
		logger:             logger.With().Str("component", "assignment_service").Logger(),
		now:                time.Now,
	}
}

func (s *assignmentService) ListTeacherAssignments(ctx context.Context) []models.TeacherAssignment {
	return s.teacherAssignments.List(ctx)
}

func (s *assignmentService) AssignTeacher(ctx context.Context, teacherID int64, subjectID string, groupID int64) (models.TeacherAssignment, error) {
	teacher, ok := s.users.FindByID(ctx, teacherID)
	if !ok {
		return models.TeacherAssignment{}, ErrUserNotFound
	}
	if teacher.Role != models.RoleTeacher && teacher.Role != models.RoleAdmin {
		return models.TeacherAssignment{}, ErrTeacherRequired
	}
	if _, ok := s.courses.FindByID(ctx, subjectID); !ok {
		return models.TeacherAssignment{}, ErrCourseNotFound
	}
	if _, ok := s.groups.FindByID(ctx, groupID); !ok {
		return models.TeacherAssignment{}, ErrGroupNotFound
	}

	assignment := models.TeacherAssignment{
		ID:        s.now().UnixMilli(),
		TeacherID: teacherID,
		SubjectID: subjectID,
		GroupID:   groupID,
		CreatedAt: s.now().UTC(),
	}
	s.teacherAssignments.Create(ctx, assignment)

	s.logger.Info().
		Int64("teacher_id", teacherID).
		Str("subject_id", subjectID).
		Int64("group_id", groupID).
		Msg("teacher assigned")
	return assignment, nil
}

func (s *assignmentService) UnassignTeacher(ctx context.Context, id int64) error {
	if err := s.teacherAssignments.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

func (s *assignmentService) ListLessonAssignments(ctx context.Context) []models.LessonAssignment {
	return s.lessonAssignments.List(ctx)
}

func (s *assignmentService) ScheduleLesson(ctx context.Context, courseID string, lessonID int, groupID int64, dueDate time.Time) (models.LessonAssignment, error) {
	course, ok := s.courses.FindByID(ctx, courseID)
	if !ok {
		return models.LessonAssignment{}, ErrCourseNotFound
	}
	if _, ok := course.Lesson(lessonID); !ok {
		return models.LessonAssignment{}, ErrLessonNotFound
	}
	if _, ok := s.groups.FindByID(ctx, groupID); !ok {
		return models.LessonAssignment{}, ErrGroupNotFound
	}

	status := models.LessonAssignmentStatusScheduled
	if !dueDate.After(s.now()) {
		status = models.LessonAssignmentStatusActive
	}

	assignment := models.LessonAssignment{
		ID:        s.now().UnixMilli(),
		CourseID:  courseID,
		LessonID:  lessonID,
		GroupID:   groupID,
		DueDate:   dueDate.UTC(),
		Status:    status,
		CreatedAt: s.now().UTC(),
	}
	s.lessonAssignments.Create(ctx, assignment)
	return assignment, nil
}

func (s *assignmentService) UpdateLessonAssignment(ctx context.Context, id int64, patch repository.LessonAssignmentPatch) (models.LessonAssignment, error) {
	assignment, err := s.lessonAssignments.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.LessonAssignment{}, ErrAssignmentNotFound
		}
		return models.LessonAssignment{}, err
	}
	return assignment, nil
}

func (s *assignmentService) RemoveLessonAssignment(ctx context.Context, id int64) error {
	if err := s.lessonAssignments.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}
