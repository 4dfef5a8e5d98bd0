package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Group failure sentinels.
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrEmptyName     = errors.New("name must not be empty")
)

// GroupService manages student cohorts.
type GroupService interface {
	List(ctx context.Context) []models.Group
	Get(ctx context.Context, id int64) (models.Group, error)
	Create(ctx context.Context, name string, teacherID *int64, studentIDs []int64) (models.Group, error)
	Update(ctx context.Context, id int64, patch repository.GroupPatch) (models.Group, error)
	Delete(ctx context.Context, id int64) error
}

type groupService struct {
	repo   repository.GroupRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewGroupService constructs a group service.
func NewGroupService(repo repository.GroupRepository, logger zerolog.Logger) GroupService {
	return &groupService{
		repo:   repo,
		logger: logger.With().Str("component", "group_service").Logger(),
		now:    time.Now,
	}
}

func (s *groupService) List(ctx context.Context) []models.Group {
	return s.repo.List(ctx)
}

func (s *groupService) Get(ctx context.Context, id int64) (models.Group, error) {
	group, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return models.Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (s *groupService) Create(ctx context.Context, name string, teacherID *int64, studentIDs []int64) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, ErrEmptyName
	}

	group := models.Group{
		ID:         s.now().UnixMilli(),
		Name:       name,
		TeacherID:  teacherID,
		StudentIDs: studentIDs,
		CreatedAt:  s.now().UTC(),
	}
	s.repo.Create(ctx, group)
	return group, nil
}

func (s *groupService) Update(ctx context.Context, id int64, patch repository.GroupPatch) (models.Group, error) {
	group, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Group{}, ErrGroupNotFound
		}
		return models.Group{}, err
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return nil
}
