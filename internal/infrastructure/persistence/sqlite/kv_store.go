package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/repository"
	"github.com/bnema/dragframe/internal/logging"
)

const (
	queryGetState    = `SELECT value FROM frame_state WHERE key = ?`
	queryUpsertState = `INSERT INTO frame_state (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	queryDeleteState = `DELETE FROM frame_state WHERE key = ?`
	queryListState   = `SELECT key, value, updated_at FROM frame_state WHERE key LIKE ? ESCAPE '\' ORDER BY key`
)

type kvStore struct {
	provider port.DatabaseProvider
}

// NewKeyValueStore creates a SQLite-backed key-value store. The connection is
// obtained from provider on each call, so a LazyDB is only opened when used.
func NewKeyValueStore(provider port.DatabaseProvider) repository.KeyValueStore {
	return &kvStore{provider: provider}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, queryGetState, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Msg("setting frame state")

	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, queryUpsertState, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, queryDeleteState, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) List(ctx context.Context, prefix string) ([]entity.StoredEntry, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, queryListState, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list frame state: %w", err)
	}
	defer rows.Close()

	var entries []entity.StoredEntry
	for rows.Next() {
		var e entity.StoredEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan frame state: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// likePrefix escapes LIKE wildcards so prefix matches literally.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
