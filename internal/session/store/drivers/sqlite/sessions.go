package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cinelog/sessiond/internal/session/domain"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the repo can be scoped to
// either the root store or a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, sid, user_ref, created_at, access_token, access_expires_at, refresh_token, refresh_expires_at`

func (r *sessionsRepo) GetSession(ctx context.Context, accessToken string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, accessToken)
	return scanSession(row)
}

// GetSessionForUpdate matches GetSession on sqlite: transactions begin
// immediate, so the enclosing transaction took the database write lock at
// BEGIN and every read-decide-write sequence is already serialised.
func (r *sessionsRepo) GetSessionForUpdate(ctx context.Context, accessToken string) (domain.Session, error) {
	return r.GetSession(ctx, accessToken)
}

func (r *sessionsRepo) PutSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sid = excluded.sid,
			user_ref = excluded.user_ref,
			created_at = excluded.created_at,
			access_token = excluded.access_token,
			access_expires_at = excluded.access_expires_at,
			refresh_token = excluded.refresh_token,
			refresh_expires_at = excluded.refresh_expires_at`,
		s.ID, s.SID, s.UserRef, s.Created,
		s.AccessToken, s.AccessExpiresAt, s.RefreshToken, s.RefreshExpiresAt,
	)
	return err
}

func (r *sessionsRepo) UpdateExpiries(ctx context.Context, accessToken string, accessExpiresAt, refreshExpiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET access_expires_at = ?, refresh_expires_at = ?
		WHERE id = ?`,
		accessExpiresAt, refreshExpiresAt, accessToken,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func scanSession(row *sql.Row) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.SID, &s.UserRef, &s.Created,
		&s.AccessToken, &s.AccessExpiresAt, &s.RefreshToken, &s.RefreshExpiresAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}
