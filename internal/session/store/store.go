package store

import (
	"context"
	"errors"
	"time"

	"github.com/cinelog/sessiond/internal/session/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. The service layer is written against this
// capability only, never against a particular engine.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Per-key
	// read-decide-write sequences (create, renew) must run through here so
	// concurrent callers racing on the same access-token key serialize.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sessions interface {
	// GetSession returns the session keyed by access token. This is the hot
	// path behind every protected request: a single-key lookup, never a scan.
	GetSession(ctx context.Context, accessToken string) (domain.Session, error)

	// GetSessionForUpdate is GetSession with the row locked for the duration
	// of the enclosing transaction. Only meaningful on a Tx-scoped store;
	// drivers without row locks rely on the transaction's write lock instead.
	GetSessionForUpdate(ctx context.Context, accessToken string) (domain.Session, error)

	// PutSession inserts or replaces the record keyed by s.ID. Invalidated
	// records are overwritten in place, never deleted, so the table doubles
	// as an audit trail.
	PutSession(ctx context.Context, s domain.Session) error

	// UpdateExpiries overrides both stored expiry columns for the keyed
	// record. Used by revoke/expire where the rest of the row must survive.
	UpdateExpiries(ctx context.Context, accessToken string, accessExpiresAt, refreshExpiresAt time.Time) error
}
