package config

import "time"

// minSessionDuration guards against sessions that expire before the
// login response reaches the client.
const minSessionDuration = time.Minute

// AuthConfig groups session-related configuration.
type AuthConfig struct {
	// SessionDuration is how long a session stays valid after login.
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"12h"`

	// SessionKeyPrefix namespaces session keys in Redis.
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionDuration < minSessionDuration {
		a.SessionDuration = minSessionDuration
	}
	if a.SessionKeyPrefix == "" {
		a.SessionKeyPrefix = "session:"
	}
}
