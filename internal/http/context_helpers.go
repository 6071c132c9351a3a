package httpx

import (
	"context"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
)

// sessionKey is the context key under which the authenticated session is stored.
type sessionKey struct{}

// SetSessionInContext stores the session in the context.
// A nil session leaves the context unchanged.
func SetSessionInContext(ctx context.Context, s *domainauth.Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetUserSessionFromContext returns the session stored by RequireAuth,
// or nil when the request was not authenticated.
func GetUserSessionFromContext(ctx context.Context) *domainauth.Session {
	s, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s
}
