package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinelog/sessiond/internal/session/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	// Transactions must take the write lock at BEGIN, not at their first
	// write: read-decide-write sequences racing on the same key then queue on
	// the busy timeout and re-read committed state, instead of all reading
	// stale state and failing with SQLITE_BUSY mid-transaction.
	if !strings.Contains(dsn, "_txlock=") {
		dsn = appendDSNOption(dsn, "_txlock=immediate")
	}
	if !strings.Contains(dsn, "_pragma=busy_timeout") {
		dsn = appendDSNOption(dsn, "_pragma=busy_timeout(5000)")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func appendDSNOption(dsn, option string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + option
	}
	return dsn + "?" + option
}

// Tx starts a read/write transaction and returns a Tx-scoped Store. The
// connection's txlock=immediate setting makes BEGIN acquire the write lock.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Sessions() store.Sessions { return &sessionsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
