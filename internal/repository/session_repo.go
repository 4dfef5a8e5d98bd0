package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// SessionRepository tracks the single currently authenticated user. The
// stored record is a copy taken at login time and can go stale relative to
// later profile edits unless the update path rewrites it.
type SessionRepository interface {
	Current(ctx context.Context) (models.User, bool)
	Save(ctx context.Context, user models.User)
	Clear(ctx context.Context)
}

type sessionRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewSessionRepository constructs a session repository over the given store.
func NewSessionRepository(kv store.Store, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		kv:     kv,
		logger: logger.With().Str("component", "session_repository").Logger(),
	}
}

func (r *sessionRepository) Current(ctx context.Context) (models.User, bool) {
	user := readCollection[models.User](ctx, r.kv, keyCurrentUser, r.logger)
	return user, user.ID != 0
}

func (r *sessionRepository) Save(ctx context.Context, user models.User) {
	writeCollection(ctx, r.kv, keyCurrentUser, user, r.logger)
}

func (r *sessionRepository) Clear(ctx context.Context) {
	removeKey(ctx, r.kv, keyCurrentUser, r.logger)
}
