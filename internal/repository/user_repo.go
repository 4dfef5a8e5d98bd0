package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// UserPatch is a shallow-merge update. Nil fields leave the stored value
// untouched.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	FullName     *string
	Role         *string
	TeacherID    *int64
}

// UserRepository owns the users collection.
type UserRepository interface {
	List(ctx context.Context) []models.User
	FindByID(ctx context.Context, id int64) (models.User, bool)
	FindByEmail(ctx context.Context, email string) (models.User, bool)
	Create(ctx context.Context, user models.User)
	Update(ctx context.Context, id int64, patch UserPatch) (models.User, error)
	Remove(ctx context.Context, id int64) error
	Replace(ctx context.Context, users []models.User)
}

type userRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewUserRepository constructs a repository over the given store.
func NewUserRepository(kv store.Store, logger zerolog.Logger) UserRepository {
	return &userRepository{
		kv:     kv,
		logger: logger.With().Str("component", "user_repository").Logger(),
	}
}

func (r *userRepository) List(ctx context.Context) []models.User {
	return readCollection[[]models.User](ctx, r.kv, keyUsers, r.logger)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, bool) {
	for _, user := range r.List(ctx) {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// FindByEmail matches case-insensitively.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, bool) {
	for _, user := range r.List(ctx) {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return models.User{}, false
}

func (r *userRepository) Create(ctx context.Context, user models.User) {
	users := r.List(ctx)
	users = append(users, user)
	writeCollection(ctx, r.kv, keyUsers, users, r.logger)
}

func (r *userRepository) Update(ctx context.Context, id int64, patch UserPatch) (models.User, error) {
	users := r.List(ctx)
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Email != nil {
			users[i].Email = *patch.Email
		}
		if patch.PasswordHash != nil {
			users[i].PasswordHash = *patch.PasswordHash
		}
		if patch.FullName != nil {
			users[i].FullName = *patch.FullName
		}
		if patch.Role != nil {
			users[i].Role = *patch.Role
		}
		if patch.TeacherID != nil {
			users[i].TeacherID = patch.TeacherID
		}
		writeCollection(ctx, r.kv, keyUsers, users, r.logger)
		return users[i], nil
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) Remove(ctx context.Context, id int64) error {
	users := r.List(ctx)
	filtered := users[:0:0]
	for _, user := range users {
		if user.ID != id {
			filtered = append(filtered, user)
		}
	}
	if len(filtered) == len(users) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyUsers, filtered, r.logger)
	return nil
}

// Replace swaps the entire collection; used by import and clear.
func (r *userRepository) Replace(ctx context.Context, users []models.User) {
	writeCollection(ctx, r.kv, keyUsers, users, r.logger)
}
