package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
// Get reports unknown or expired sessions via the adapter's not-found error;
// Delete is idempotent.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
