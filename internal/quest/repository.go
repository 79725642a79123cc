package quest

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/myrjola/questapp/internal/errors"
	"github.com/myrjola/questapp/internal/sqlite"
)

const dateFormat = time.DateOnly

// ErrNotFound is returned when a requested profile or quest does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// sqliteRepository handles database operations for profiles, quests, and the
// food catalog.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// newSQLiteRepository creates a new SQLite-backed quest repository.
func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// rollback discards a transaction, logging unexpected failures.
func (r *sqliteRepository) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
	}
}
