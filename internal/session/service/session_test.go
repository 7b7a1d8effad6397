package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cinelog/sessiond/internal/session/domain"
	"github.com/cinelog/sessiond/internal/session/store/drivers/sqlite"
	"github.com/cinelog/sessiond/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *SessionService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &SessionService{Store: st}
}

// newFileBackedService uses a file database so concurrent connections share
// state; an in-memory database is private to its connection.
func newFileBackedService(t *testing.T) *SessionService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", filepath.Join(t.TempDir(), "sessions.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &SessionService{Store: st}
}

func TestCreateDerivesTokenPair(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	before := time.Now()
	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	require.Equal(t, "user-123", sess.UserRef)
	require.True(t, cryptox.ValidTokenFormat(sess.AccessToken))
	require.True(t, cryptox.ValidTokenFormat(sess.RefreshToken))
	require.NotEqual(t, sess.AccessToken, sess.RefreshToken)
	require.NotEmpty(t, sess.SID)

	require.True(t, sess.RefreshExpiresAt.After(sess.AccessExpiresAt))
	require.WithinDuration(t, before.Add(domain.DefaultAccessTokenTTL), sess.AccessExpiresAt, 5*time.Second)
	require.WithinDuration(t, before.Add(domain.DefaultRefreshTokenTTL), sess.RefreshExpiresAt, 5*time.Second)
}

func TestGetResolvesFreshSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	got, err := svc.Get(ctx, sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.AccessToken, got.AccessToken)
	require.Equal(t, sess.RefreshToken, got.RefreshToken)
	require.Equal(t, sess.UserRef, got.UserRef)
	require.Equal(t, sess.SID, got.SID)
	require.WithinDuration(t, sess.AccessExpiresAt, got.AccessExpiresAt, time.Second)
}

func TestGetRejectsMissingOrUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Get(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Get(ctx, "00112233445566778899aabbccddeeff00112233")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetRejectsExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	require.NoError(t, svc.Expire(ctx, sess.AccessToken))

	_, err = svc.Get(ctx, sess.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRenewRejectsWrongRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	_, err = svc.Renew(ctx, sess.AccessToken, "this_should_fail")
	require.ErrorIs(t, err, ErrUnauthorized)

	// The failed attempt must leave the session untouched.
	got, err := svc.Get(ctx, sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.RefreshToken, got.RefreshToken)

	_, err = svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
	require.NoError(t, err)
}

func TestRenewRotatesSingleUse(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	renewed, err := svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, sess.UserRef, renewed.UserRef)
	require.Equal(t, sess.SID, renewed.SID)
	require.NotEqual(t, sess.AccessToken, renewed.AccessToken)
	require.NotEqual(t, sess.RefreshToken, renewed.RefreshToken)

	// The consumed refresh token must not work a second time.
	_, err = svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	// The superseded access token is dead, the new one is live.
	_, err = svc.Get(ctx, sess.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	got, err := svc.Get(ctx, renewed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.UserRef)
}

func TestRenewConcurrentRacersSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc := newFileBackedService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	// Racing renewals on one refresh token: exactly one mints a live pair,
	// the rest observe the revoked record and fail as unauthorized.
	const racers = 8

	var wg sync.WaitGroup
	results := make([]domain.Session, racers)
	errs := make([]error, racers)

	wg.Add(racers)
	for i := range racers {
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
		}()
	}
	wg.Wait()

	wins := 0
	var winner domain.Session
	for i := range racers {
		if errs[i] == nil {
			wins++
			winner = results[i]
			continue
		}
		require.ErrorIs(t, errs[i], ErrUnauthorized)
	}
	require.Equal(t, 1, wins)

	// Only the winner's pair resolves; the consumed one is dead.
	got, err := svc.Get(ctx, winner.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.SID, got.SID)

	_, err = svc.Get(ctx, sess.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRenewRejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Renew(ctx, "", "whatever")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Renew(ctx, "00112233445566778899aabbccddeeff00112233", "whatever")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateCollisionOnLiveKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	access := cryptox.MustGenerateToken()

	_, err := svc.CreateWithTokens(ctx, "user-1", access, cryptox.MustGenerateToken())
	require.NoError(t, err)

	_, err = svc.CreateWithTokens(ctx, "user-2", access, cryptox.MustGenerateToken())
	require.ErrorIs(t, err, ErrCollision)
}

func TestCreateRecyclesStaleKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	access := cryptox.MustGenerateToken()

	sess, err := svc.CreateWithTokens(ctx, "user-1", access, cryptox.MustGenerateToken())
	require.NoError(t, err)

	// Push the binding past its refresh expiry, then reuse the key.
	require.NoError(t, svc.Revoke(ctx, sess.AccessToken))

	recycled, err := svc.CreateWithTokens(ctx, "user-2", access, cryptox.MustGenerateToken())
	require.NoError(t, err)
	require.Equal(t, "user-2", recycled.UserRef)
	require.True(t, recycled.AccessExpiresAt.After(time.Now()))
	require.True(t, recycled.RefreshExpiresAt.After(time.Now()))
}

func TestRevokeIsTerminal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	sess, err := svc.Create(ctx, "user-123")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, sess.AccessToken))

	_, err = svc.Get(ctx, sess.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRevokeUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	err := svc.Revoke(ctx, "00112233445566778899aabbccddeeff00112233")
	require.ErrorIs(t, err, ErrUnauthorized)

	err = svc.Revoke(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// Issue and resolve.
	sess, err := svc.Create(ctx, "u1")
	require.NoError(t, err)

	got, err := svc.Get(ctx, sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserRef)

	// Rotate: old pair dies, new pair lives.
	renewed, err := svc.Renew(ctx, sess.AccessToken, sess.RefreshToken)
	require.NoError(t, err)

	_, err = svc.Get(ctx, sess.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Get(ctx, renewed.AccessToken)
	require.NoError(t, err)

	// Revoke the new session and confirm it is gone for good.
	require.NoError(t, svc.Revoke(ctx, renewed.AccessToken))

	_, err = svc.Get(ctx, renewed.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}
