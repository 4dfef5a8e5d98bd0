package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

func newTestUserRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewUserRepository(store.NewMemoryStore(), zerolog.Nop())
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	require.Empty(t, repo.List(ctx))

	repo.Create(ctx, models.User{
		ID:        1,
		Email:     "admin@educode.com",
		FullName:  "EduCode Administrator",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	})

	user, ok := repo.FindByID(ctx, 1)
	require.True(t, ok)
	require.Equal(t, "admin@educode.com", user.Email)

	// Email lookup ignores case.
	user, ok = repo.FindByEmail(ctx, "Admin@EduCode.com")
	require.True(t, ok)
	require.Equal(t, int64(1), user.ID)

	_, ok = repo.FindByEmail(ctx, "missing@educode.com")
	require.False(t, ok)
}

func TestUserRepositoryUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	repo.Create(ctx, models.User{ID: 2, Email: "test@educode.com", FullName: "Test User", Role: models.RoleUser})

	newRole := models.RoleTeacher
	updated, err := repo.Update(ctx, 2, UserPatch{Role: &newRole})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, updated.Role)
	require.Equal(t, "test@educode.com", updated.Email)
	require.Equal(t, "Test User", updated.FullName)

	_, err = repo.Update(ctx, 99, UserPatch{Role: &newRole})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryRemoveAndReplace(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	repo.Create(ctx, models.User{ID: 1, Email: "a@educode.com", Role: models.RoleAdmin})
	repo.Create(ctx, models.User{ID: 2, Email: "b@educode.com", Role: models.RoleStudent})

	require.NoError(t, repo.Remove(ctx, 2))
	require.Len(t, repo.List(ctx), 1)
	require.ErrorIs(t, repo.Remove(ctx, 2), ErrNotFound)

	repo.Replace(ctx, []models.User{{ID: 5, Email: "c@educode.com", Role: models.RoleStudent}})
	users := repo.List(ctx)
	require.Len(t, users, 1)
	require.Equal(t, int64(5), users[0].ID)
}

func TestUserRepositoryIgnoresCorruptDocument(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "educode_users", "{not json"))

	repo := NewUserRepository(kv, zerolog.Nop())
	require.Empty(t, repo.List(ctx))
}
