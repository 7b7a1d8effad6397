package sessionsdk

import "time"

// SessionResponse is the wire shape returned by issuance and renewal.
type SessionResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	TokenType        string    `json:"token_type"` // always "Bearer"
	UserRef          string    `json:"user_ref"`
	SID              string    `json:"sid"`
}

// SessionInfo describes a resolved session without echoing credentials.
type SessionInfo struct {
	UserRef          string    `json:"user_ref"`
	SID              string    `json:"sid"`
	CreatedAt        time.Time `json:"created_at"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// PeekResponse is returned by the optional-auth probe endpoint.
type PeekResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserRef       string `json:"user_ref,omitempty"`
}

// CreateSessionRequest is the issuance request body. The caller is expected
// to have verified the principal's identity already; user_ref is opaque here.
type CreateSessionRequest struct {
	UserRef string `json:"user_ref"`
}

// RenewSessionRequest is the rotation request body.
type RenewSessionRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}
