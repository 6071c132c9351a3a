package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openlibms/libms/internal/core"
	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	"github.com/openlibms/libms/internal/ports"
)

// DefaultSessionDuration is used when no session duration is configured.
const DefaultSessionDuration = 12 * time.Hour

// loginFailedMessage is shared by the unknown-user and wrong-password paths
// so responses do not reveal which half of the credential was wrong.
const loginFailedMessage = "incorrect username or password"

var errSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users           core.UserRepository
	Sessions        ports.SessionStore
	SessionDuration time.Duration
}

// AuthService orchestrates registration, credential login, and session lifecycle.
type AuthService struct {
	users           core.UserRepository
	sessions        ports.SessionStore
	sessionDuration time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	duration := opts.SessionDuration
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	return &AuthService{
		users:           opts.Users,
		sessions:        opts.Sessions,
		sessionDuration: duration,
	}
}

// Register creates a new account. Preconditions are checked in a fixed
// order: password confirmation, then userid availability, then username
// availability. The pre-checks give friendly messages; the database unique
// constraints remain authoritative under concurrent registration.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("register request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ValidationField("confirmPassword", "password and confirmation do not match")
	}

	if _, err := s.users.GetByID(ctx, req.Userid); err == nil {
		return nil, apperrors.Conflict("this userid is already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("check userid availability: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Conflict("this username is already taken")
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("check username availability: %w", err)
	}

	encoded, err := domainauth.EncodePassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	user := req.User()
	user.Password = encoded
	user.Role = string(domainauth.DefaultRole)

	created, createErr := s.users.Create(ctx, user)
	if createErr != nil {
		return nil, createErr
	}
	return created.Sanitized(), nil
}

// Login verifies credentials and persists a new session. Unknown usernames
// and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*domainauth.Session, error) {
	if req == nil {
		return nil, apperrors.Validation("login request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(loginFailedMessage)
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !domainauth.VerifyPassword(req.Password, user.Password) {
		return nil, apperrors.Unauthorized(loginFailedMessage)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    user.Userid,
		Username:  user.Username,
		Role:      domainauth.NormalizeRole(user.Role),
		DepartID:  user.Departid,
		ExpiresAt: time.Now().Add(s.sessionDuration),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &session, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session. Logging out an unknown or empty session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ChangePasswordInput groups parameters for ChangePassword.
type ChangePasswordInput struct {
	Userid  string
	Request model.ChangePasswordRequest
}

// ChangePassword verifies the current credential and stores a newly encoded
// one. Legacy plaintext credentials are accepted for the old-password check
// and replaced with a hash on success.
func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.Userid == "" {
		return apperrors.Unauthorized("not logged in")
	}
	if err := in.Request.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, in.Userid)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.Validation("account no longer exists")
		}
		return err
	}

	if !domainauth.VerifyPassword(in.Request.OldPassword, user.Password) {
		return apperrors.ValidationField("oldPassword", "original password is incorrect")
	}

	encoded, err := domainauth.EncodePassword(in.Request.NewPassword)
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}

	return s.users.UpdatePassword(ctx, in.Userid, encoded)
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
