package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// GroupPatch is a shallow-merge update for a group.
type GroupPatch struct {
	Name       *string
	TeacherID  *int64
	StudentIDs *[]int64
}

// GroupRepository owns the groups collection.
type GroupRepository interface {
	List(ctx context.Context) []models.Group
	FindByID(ctx context.Context, id int64) (models.Group, bool)
	Create(ctx context.Context, group models.Group)
	Update(ctx context.Context, id int64, patch GroupPatch) (models.Group, error)
	Remove(ctx context.Context, id int64) error
}

type groupRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewGroupRepository constructs a repository over the given store.
func NewGroupRepository(kv store.Store, logger zerolog.Logger) GroupRepository {
	return &groupRepository{
		kv:     kv,
		logger: logger.With().Str("component", "group_repository").Logger(),
	}
}

func (r *groupRepository) List(ctx context.Context) []models.Group {
	return readCollection[[]models.Group](ctx, r.kv, keyGroups, r.logger)
}

func (r *groupRepository) FindByID(ctx context.Context, id int64) (models.Group, bool) {
	for _, group := range r.List(ctx) {
		if group.ID == id {
			return group, true
		}
	}
	return models.Group{}, false
}

func (r *groupRepository) Create(ctx context.Context, group models.Group) {
	groups := r.List(ctx)
	groups = append(groups, group)
	writeCollection(ctx, r.kv, keyGroups, groups, r.logger)
}

func (r *groupRepository) Update(ctx context.Context, id int64, patch GroupPatch) (models.Group, error) {
	groups := r.List(ctx)
	for i := range groups {
		if groups[i].ID != id {
			continue
		}
		if patch.Name != nil {
			groups[i].Name = *patch.Name
		}
		if patch.TeacherID != nil {
			groups[i].TeacherID = patch.TeacherID
		}
		if patch.StudentIDs != nil {
			groups[i].StudentIDs = *patch.StudentIDs
		}
		writeCollection(ctx, r.kv, keyGroups, groups, r.logger)
		return groups[i], nil
	}
	return models.Group{}, ErrNotFound
}

func (r *groupRepository) Remove(ctx context.Context, id int64) error {
	groups := r.List(ctx)
	filtered := groups[:0:0]
	for _, group := range groups {
		if group.ID != id {
			filtered = append(filtered, group)
		}
	}
	if len(filtered) == len(groups) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyGroups, filtered, r.logger)
	return nil
}
