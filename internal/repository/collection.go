package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/observability"
	"github.com/educode-platform/educode-api/internal/store"
)

// ErrNotFound indicates no record with the given id exists in a collection.
var ErrNotFound = errors.New("record not found")

// readCollection decodes the document stored under key into a value of T.
// A missing key, a storage failure and a corrupt document all yield the zero
// value: callers cannot distinguish "no record" from "storage failed", which
// is the documented sharp edge of the adapter contract.
func readCollection[T any](ctx context.Context, kv store.Store, key string, logger zerolog.Logger) T {
	var value T

	observability.StoreOperations().WithLabelValues(key, "read").Inc()

	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			observability.StoreOperationFailures().WithLabelValues(key, "read").Inc()
			logger.Error().Err(err).Str("key", key).Msg("failed to read collection")
		}
		return value
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		observability.StoreOperationFailures().WithLabelValues(key, "read").Inc()
		logger.Error().Err(err).Str("key", key).Msg("corrupt collection document")
		var zero T
		return zero
	}

	return value
}

// writeCollection persists value as the whole document under key. Failures
// are logged and swallowed; the operation silently did not happen.
func writeCollection(ctx context.Context, kv store.Store, key string, value interface{}, logger zerolog.Logger) {
	observability.StoreOperations().WithLabelValues(key, "write").Inc()

	raw, err := json.Marshal(value)
	if err != nil {
		observability.StoreOperationFailures().WithLabelValues(key, "write").Inc()
		logger.Error().Err(err).Str("key", key).Msg("failed to encode collection")
		return
	}

	if err := kv.Set(ctx, key, string(raw)); err != nil {
		observability.StoreOperationFailures().WithLabelValues(key, "write").Inc()
		logger.Error().Err(err).Str("key", key).Msg("failed to persist collection")
	}
}

// removeKey deletes the document under key, swallowing storage failures.
func removeKey(ctx context.Context, kv store.Store, key string, logger zerolog.Logger) {
	observability.StoreOperations().WithLabelValues(key, "remove").Inc()

	if err := kv.Remove(ctx, key); err != nil {
		observability.StoreOperationFailures().WithLabelValues(key, "remove").Inc()
		logger.Error().Err(err).Str("key", key).Msg("failed to remove collection")
	}
}
