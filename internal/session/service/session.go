package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/cinelog/sessiond/internal/session/domain"
	"github.com/cinelog/sessiond/internal/session/store"
	"github.com/cinelog/sessiond/pkg/cryptox"
	"github.com/cinelog/sessiond/pkg/idx"
	"github.com/cinelog/sessiond/pkg/slogx"
)

var (
	// ErrUnauthorized covers every caller-facing credential failure: missing,
	// unknown, or expired access token on Get; missing record, mismatched or
	// expired refresh token on Renew. Not retriable without new credentials.
	ErrUnauthorized = errors.New("invalid or expired token")

	// ErrCollision reports an attempt to bind an access-token key that is
	// still bound to a live refresh token. Should not occur with generated
	// tokens; it signals a generator defect or deliberate reuse in tests.
	ErrCollision = errors.New("access token collision")
)

const (
	// revokeBackdate puts explicit revocations unambiguously in the past.
	revokeBackdate = 24 * time.Hour
	// expireBackdate simulates a session that just crossed natural expiry.
	expireBackdate = time.Second

	// maxCreateAttempts bounds the regenerate-and-retry remediation when a
	// freshly generated token collides with a live key.
	maxCreateAttempts = 3
)

// SessionService implements the session lifecycle: issuance, resolution,
// single-use rotation, and revocation. All mutation goes through the store's
// transaction so read-decide-write sequences on the same access-token key are
// serialized; no session state is cached in-process across requests.
type SessionService struct {
	Store      store.Store
	AccessTTL  time.Duration // zero means domain.DefaultAccessTokenTTL
	RefreshTTL time.Duration // zero means domain.DefaultRefreshTokenTTL
}

func (s *SessionService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return domain.DefaultAccessTokenTTL
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return domain.DefaultRefreshTokenTTL
}

// Create issues a fresh session for userRef with generated tokens. A
// collision on a generated key is remediated internally by regenerating and
// retrying; it is never surfaced to the caller.
func (s *SessionService) Create(ctx context.Context, userRef string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	var lastErr error
	for range maxCreateAttempts {
		accessToken, err := cryptox.GenerateToken()
		if err != nil {
			return domain.Session{}, err
		}
		refreshToken, err := cryptox.GenerateToken()
		if err != nil {
			return domain.Session{}, err
		}

		sess, err := s.CreateWithTokens(ctx, userRef, accessToken, refreshToken)
		if errors.Is(err, ErrCollision) {
			log.Warn("generated access token collided with a live key, regenerating",
				"user_ref", userRef)
			lastErr = err
			continue
		}
		return sess, err
	}
	return domain.Session{}, lastErr
}

// CreateWithTokens issues a session with caller-supplied token values. Used
// by rotation and by tests that need deterministic keys; unlike Create, a
// collision propagates to the caller.
func (s *SessionService) CreateWithTokens(ctx context.Context, userRef, accessToken, refreshToken string) (domain.Session, error) {
	if accessToken == "" || refreshToken == "" {
		return domain.Session{}, ErrUnauthorized
	}

	var out domain.Session
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := s.createLocked(ctx, tx, "", userRef, accessToken, refreshToken, time.Now())
		if err != nil {
			return err
		}
		out = sess
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return out, nil
}

// createLocked performs the atomic get-or-insert keyed by accessToken. It
// must run inside a transaction holding the per-key lock: the existence
// check, the collision check, and the write are indivisible with respect to
// other create/renew calls on the same key.
func (s *SessionService) createLocked(ctx context.Context, tx store.Tx, sid, userRef, accessToken, refreshToken string, now time.Time) (domain.Session, error) {
	existing, err := tx.Sessions().GetSessionForUpdate(ctx, accessToken)
	switch {
	case err == nil:
		if existing.Bound() && !existing.RefreshExpired(now) {
			return domain.Session{}, ErrCollision
		}
		// Stale binding (refresh expired or never bound): the key is recycled.
	case !errors.Is(err, store.ErrNotFound):
		return domain.Session{}, err
	}

	if sid == "" {
		sid = idx.New().String()
	}

	sess := domain.NewSession(sid, userRef, accessToken, refreshToken, now, s.accessTTL(), s.refreshTTL())
	if err := tx.Sessions().PutSession(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Get resolves an access token to its live session. This is the hot path
// behind every protected request: one single-key read, no transaction, and
// the refresh token is never consulted.
func (s *SessionService) Get(ctx context.Context, accessToken string) (domain.Session, error) {
	if accessToken == "" {
		return domain.Session{}, ErrUnauthorized
	}

	sess, err := s.Store.Sessions().GetSession(ctx, accessToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrUnauthorized
		}
		return domain.Session{}, err
	}

	if !sess.Bound() || sess.AccessExpired(time.Now()) {
		return domain.Session{}, ErrUnauthorized
	}
	return sess, nil
}

// Renew rotates a token pair: it validates the refresh token against the
// record keyed by accessToken, revokes that record, and issues a brand-new
// session for the same principal under a fresh key. The whole sequence runs
// in one per-key transaction, so presenting the same refresh token twice
// fails the second time, including for concurrent racers. Access-token
// expiry is deliberately not checked: clients renew at or past expiry.
func (s *SessionService) Renew(ctx context.Context, accessToken, refreshToken string) (domain.Session, error) {
	if accessToken == "" {
		return domain.Session{}, ErrUnauthorized
	}

	log := slogx.FromContext(ctx)

	var out domain.Session
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now()

		old, err := tx.Sessions().GetSessionForUpdate(ctx, accessToken)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthorized
			}
			return err
		}
		if !old.Bound() {
			return ErrUnauthorized
		}
		if subtle.ConstantTimeCompare([]byte(old.RefreshToken), []byte(refreshToken)) != 1 ||
			old.RefreshExpired(now) {
			return ErrUnauthorized
		}

		// Revoke the old record first so the refresh token is single-use even
		// if issuing the replacement fails and rolls the whole tx back.
		old.ForceExpire(now.Add(-revokeBackdate))
		if err := tx.Sessions().UpdateExpiries(ctx, old.ID, old.AccessExpiresAt, old.RefreshExpiresAt); err != nil {
			return err
		}

		for range maxCreateAttempts {
			newAccess, err := cryptox.GenerateToken()
			if err != nil {
				return err
			}
			newRefresh, err := cryptox.GenerateToken()
			if err != nil {
				return err
			}

			sess, err := s.createLocked(ctx, tx, old.SID, old.UserRef, newAccess, newRefresh, now)
			if errors.Is(err, ErrCollision) {
				log.Warn("generated access token collided during renew, regenerating",
					"sid", old.SID)
				continue
			}
			if err != nil {
				return err
			}
			out = sess
			return nil
		}
		return ErrCollision
	})
	if err != nil {
		return domain.Session{}, err
	}
	return out, nil
}

// Revoke force-expires both tokens of the session keyed by accessToken with
// an unambiguously past instant. Terminal: a revoked session never validates
// again. The record itself stays behind as an audit trail.
func (s *SessionService) Revoke(ctx context.Context, accessToken string) error {
	return s.forceExpire(ctx, accessToken, revokeBackdate)
}

// Expire force-expires the session as if it had just crossed its natural
// expiry. Semantically identical to Revoke, only the backdate differs.
func (s *SessionService) Expire(ctx context.Context, accessToken string) error {
	return s.forceExpire(ctx, accessToken, expireBackdate)
}

func (s *SessionService) forceExpire(ctx context.Context, accessToken string, backdate time.Duration) error {
	if accessToken == "" {
		return ErrUnauthorized
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := tx.Sessions().GetSessionForUpdate(ctx, accessToken)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthorized
			}
			return err
		}

		sess.ForceExpire(time.Now().Add(-backdate))
		return tx.Sessions().UpdateExpiries(ctx, sess.ID, sess.AccessExpiresAt, sess.RefreshExpiresAt)
	})
}
