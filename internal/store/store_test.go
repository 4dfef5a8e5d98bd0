package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func runStoreContract(t *testing.T, kv Store) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "educode_users")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "educode_users", `[{"id":1}]`))

	value, err := kv.Get(ctx, "educode_users")
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, value)

	require.NoError(t, kv.Set(ctx, "educode_users", `[]`))
	value, err = kv.Get(ctx, "educode_users")
	require.NoError(t, err)
	require.Equal(t, `[]`, value)

	require.NoError(t, kv.Remove(ctx, "educode_users"))
	_, err = kv.Get(ctx, "educode_users")
	require.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is not an error.
	require.NoError(t, kv.Remove(ctx, "educode_users"))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	runStoreContract(t, fileStore)
}

func TestFileStoreRejectsEmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer client.Close()

	runStoreContract(t, NewRedisStore(client))
}

func TestGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	gormStore, err := NewGormStore(db)
	require.NoError(t, err)

	runStoreContract(t, gormStore)
}
