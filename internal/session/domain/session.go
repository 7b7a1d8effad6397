package domain

import "time"

const (
	// DefaultAccessTokenTTL is how long an access token stays valid after issue.
	DefaultAccessTokenTTL = 6 * time.Hour
	// DefaultRefreshTokenTTL is how long the paired refresh token stays valid.
	DefaultRefreshTokenTTL = 10 * 24 * time.Hour
)

// Session binds an opaque user reference to a live access/refresh token pair.
// The access token value doubles as the storage primary key (ID). Expiries are
// stored explicitly: they start out derived from Created plus a TTL, but once
// ForceExpire has run they are no longer a function of Created.
type Session struct {
	ID               string // equals AccessToken; primary key in the store
	SID              string // stable session identifier, retained across rotation
	UserRef          string // opaque reference to the owning principal, never interpreted
	Created          time.Time
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// NewSession derives a Session for userRef issued at now. The refresh expiry
// always lands strictly after the access expiry for any sane TTL pair.
func NewSession(sid, userRef, accessToken, refreshToken string, now time.Time, accessTTL, refreshTTL time.Duration) Session {
	return Session{
		ID:               accessToken,
		SID:              sid,
		UserRef:          userRef,
		Created:          now,
		AccessToken:      accessToken,
		AccessExpiresAt:  now.Add(accessTTL),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(refreshTTL),
	}
}

// AccessExpired reports whether the access token is past its expiry at now.
func (s Session) AccessExpired(now time.Time) bool {
	return now.After(s.AccessExpiresAt)
}

// RefreshExpired reports whether the refresh token is past its expiry at now.
func (s Session) RefreshExpired(now time.Time) bool {
	return now.After(s.RefreshExpiresAt)
}

// Bound reports whether the record has ever been bound to a principal. An
// unbound record is a recyclable placeholder, not a live session.
func (s Session) Bound() bool {
	return s.UserRef != ""
}

// ForceExpire overrides both expiries to at, invalidating the session.
// Invalidation is monotonic: an expiry never moves later, so a revoked or
// expired session cannot transition back to valid.
func (s *Session) ForceExpire(at time.Time) {
	if at.Before(s.AccessExpiresAt) {
		s.AccessExpiresAt = at
	}
	if at.Before(s.RefreshExpiresAt) {
		s.RefreshExpiresAt = at
	}
}
