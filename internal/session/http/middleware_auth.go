package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cinelog/sessiond/internal/session/domain"
	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
	"github.com/cinelog/sessiond/pkg/slogx"
)

// Policy selects how the authentication gate treats a failed resolution.
type Policy int

const (
	// Required rejects the request with 401 before the handler runs.
	Required Policy = iota
	// Optional runs the handler with no session in context instead of failing.
	Optional
)

// SessionResolver resolves an extracted bearer credential to a live session.
type SessionResolver interface {
	Get(ctx context.Context, accessToken string) (domain.Session, error)
}

type ctxKey string

const ctxKeySession ctxKey = "session"

// SessionFromContext returns the session resolved by the authentication
// gate, if any. Under the Optional policy ok distinguishes an anonymous
// request from an authenticated one.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(domain.Session)
	return sess, ok
}

// ExtractBearerToken pulls the credential out of an Authorization header
// value. Every literal "Bearer " occurrence is treated as removable padding,
// not just a leading prefix, so "Bearer <tok>", "<tok>" and malformed
// variants with the marker embedded all normalise to "<tok>".
func ExtractBearerToken(header string) string {
	return strings.TrimSpace(strings.ReplaceAll(header, "Bearer ", ""))
}

// Authenticate gates a handler behind session resolution. The resolved
// session is injected into the request context before the handler runs.
func Authenticate(resolver SessionResolver, policy Policy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := ExtractBearerToken(r.Header.Get("Authorization"))

			sess, err := resolver.Get(ctx, token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUnauthorized) && policy == Optional:
					next.ServeHTTP(w, r)
				case errors.Is(err, service.ErrUnauthorized):
					writeBearerError(w)
				default:
					log.Error("session resolution failed", "err", err)
					sessionsdk.ErrServerError.WriteError(w)
				}
				return
			}

			ctx = context.WithValue(ctx, ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-style error response for bearer auth failures.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="invalid or expired token"`)
	sessionsdk.ErrUnauthorized.WriteError(w)
}
