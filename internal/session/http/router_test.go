package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/internal/session/store/drivers/sqlite"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *sessionsdk.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter("test", st, logger)
	router.SessionService = &service.SessionService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return sessionsdk.NewClient(srv.URL)
}

func requireAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()

	var apiErr *sessionsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestIssueAndResolveSession(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	info, err := client.CurrentSession(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-123", info.UserRef)
	require.Equal(t, pair.SID, info.SID)
}

func TestIssueRejectsEmptyUserRef(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	_, err := client.CreateSession(ctx, "   ")
	requireAPIError(t, err, http.StatusBadRequest, sessionsdk.ErrorCodeInvalidRequest)
}

func TestCurrentSessionRequiresCredential(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	_, err := client.CurrentSession(ctx, "")
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	_, err = client.CurrentSession(ctx, "0123456789abcdef0123456789abcdef01234567")
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)
}

func TestRenewRotatesPair(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)

	renewed, err := client.RenewSession(ctx, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, pair.SID, renewed.SID)
	require.Equal(t, "user-123", renewed.UserRef)
	require.NotEqual(t, pair.AccessToken, renewed.AccessToken)
	require.NotEqual(t, pair.RefreshToken, renewed.RefreshToken)

	// Old pair is dead: resolution and a second renewal both fail.
	_, err = client.CurrentSession(ctx, pair.AccessToken)
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	_, err = client.RenewSession(ctx, pair.AccessToken, pair.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	// The rotated pair works.
	info, err := client.CurrentSession(ctx, renewed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, pair.SID, info.SID)
}

func TestRenewRejectsMismatchedRefreshToken(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)

	_, err = client.RenewSession(ctx, pair.AccessToken, "0123456789abcdef0123456789abcdef01234567")
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	// The mismatch must not have burned the real refresh token.
	_, err = client.RenewSession(ctx, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRevokeIsTerminalOverHTTP(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)

	require.NoError(t, client.RevokeSession(ctx, pair.AccessToken))

	_, err = client.CurrentSession(ctx, pair.AccessToken)
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	// Revocation backdates the refresh expiry too, so rotation is also dead.
	_, err = client.RenewSession(ctx, pair.AccessToken, pair.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)

	// Revoking again with the dead credential is itself unauthorized.
	err = client.RevokeSession(ctx, pair.AccessToken)
	requireAPIError(t, err, http.StatusUnauthorized, sessionsdk.ErrorCodeUnauthorized)
}

func TestPeekSession(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	// Anonymous: 200 with authenticated=false, never a 401.
	peek, err := client.PeekSession(ctx, "")
	require.NoError(t, err)
	require.False(t, peek.Authenticated)
	require.Empty(t, peek.UserRef)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)

	peek, err = client.PeekSession(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, peek.Authenticated)
	require.Equal(t, "user-123", peek.UserRef)

	// A garbage credential degrades to anonymous instead of failing.
	peek, err = client.PeekSession(ctx, "not-a-token")
	require.NoError(t, err)
	require.False(t, peek.Authenticated)
}

func TestBareTokenHeaderAccepted(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	pair, err := client.CreateSession(ctx, "user-123")
	require.NoError(t, err)

	// The gate strips "Bearer " markers leniently; a bare token resolves too.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.BaseURL+"/v1/session", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", pair.AccessToken)

	resp, err := client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenResponsesAreNotCacheable(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.BaseURL+"/v1/session",
		strings.NewReader(`{"user_ref":"user-123"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestHealthEndpoints(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.BaseURL+path, nil)
		require.NoError(t, err)

		resp, err := client.HTTPClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}
