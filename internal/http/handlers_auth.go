package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	"github.com/openlibms/libms/internal/service"
)

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// UserInfo is the session projection returned to clients.
type UserInfo struct {
	Userid   string  `json:"userid"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Departid *string `json:"departid"`
}

func userInfoFromSession(s *domainauth.Session) UserInfo {
	return UserInfo{
		Userid:   s.UserID,
		Username: s.Username,
		Role:     string(s.Role),
		Departid: s.DepartID,
	}
}

// Register handles account creation.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Register(r.Context(), &req); err != nil {
		WriteAppError(w, err)
		return
	}

	// Registration succeeds with an empty payload; the client logs in next.
	WriteMessage(w, "success")
}

// Login verifies credentials and establishes a session.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, session)
	h.logger().Info("login", slog.String("userid", session.UserID))
	WriteData(w, userInfoFromSession(session))
}

// Logout destroys the current session, if any, and clears the cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(r.Context(), cookie.Value); err != nil {
			h.logger().Warn("logout", slog.Any("error", err))
		}
	}

	h.clearSessionCookie(w, r)
	WriteMessage(w, "logged out")
}

// Current returns the authenticated user's info.
// GET /auth/current.
func (h *AuthHandlers) Current(w http.ResponseWriter, r *http.Request) {
	session := GetUserSessionFromContext(r.Context())
	if session == nil {
		WriteJSON(w, http.StatusUnauthorized, Result{
			Code:    http.StatusUnauthorized,
			Message: "not logged in",
		})
		return
	}

	WriteData(w, userInfoFromSession(session))
}

// ChangePassword replaces the authenticated user's credential.
// POST /auth/change-password.
func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := GetUserSessionFromContext(r.Context())
	if session == nil {
		WriteJSON(w, http.StatusUnauthorized, Result{
			Code:    http.StatusUnauthorized,
			Message: "not logged in",
		})
		return
	}

	var req model.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.Svc.ChangePassword(r.Context(), service.ChangePasswordInput{
		Userid:  session.UserID,
		Request: req,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteMessage(w, "password changed")
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s *domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session cookie immediately.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
