package sessionsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the session service. It is used by trusted
// backends that verify identities themselves and exchange the resulting user
// reference for a token pair.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a session service client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateSession exchanges a verified user reference for a fresh token pair.
func (c *Client) CreateSession(ctx context.Context, userRef string) (*SessionResponse, error) {
	var out SessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/session", "",
		CreateSessionRequest{UserRef: userRef}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RenewSession rotates a token pair. The refresh token is single-use: after
// a successful call the old pair is dead and only the returned pair works.
func (c *Client) RenewSession(ctx context.Context, accessToken, refreshToken string) (*SessionResponse, error) {
	var out SessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/session/renew", "",
		RenewSessionRequest{AccessToken: accessToken, RefreshToken: refreshToken}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentSession resolves the access token into session metadata.
func (c *Client) CurrentSession(ctx context.Context, accessToken string) (*SessionInfo, error) {
	var out SessionInfo
	if err := c.doJSON(ctx, http.MethodGet, "/v1/session", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PeekSession probes the optional-auth endpoint; it never fails on a bad token.
func (c *Client) PeekSession(ctx context.Context, accessToken string) (*PeekResponse, error) {
	var out PeekResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/session/peek", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeSession invalidates the presented session permanently.
func (c *Client) RevokeSession(ctx context.Context, accessToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/session/revoke", accessToken, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError, falling back to a
// generic error when the body is not the expected shape.
func decodeError(resp *http.Response) error {
	var wire ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil || wire.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        wire.Code,
		Description: wire.Description,
	}
}
