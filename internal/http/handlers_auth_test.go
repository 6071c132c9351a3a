package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlibms/libms/internal/domain/model"
)

func authTestRouter(env *testEnv) http.Handler {
	return NewRouter(RouterServices{Auth: env.auth})
}

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	env := newTestEnv()
	router := authTestRouter(env)

	req := jsonRequest(http.MethodPost, "/auth/register", model.RegisterRequest{
		Userid:          "u1",
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, 0, result.Code)

	// Registration returns an empty payload, so nothing about the account
	// (least of all the credential) can leak here.
	assert.Nil(t, result.Data)

	loginReq := jsonRequest(http.MethodPost, "/auth/login", model.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)

	require.Equal(t, http.StatusOK, loginRec.Code)
	loginResult := decodeResult(t, loginRec)
	assert.Equal(t, 0, loginResult.Code)

	cookies := loginRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestAuthHandlers_LoginFailure(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "u1", "alice", "secret1")
	router := authTestRouter(env)

	req := jsonRequest(http.MethodPost, "/auth/login", model.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, http.StatusUnauthorized, result.Code)
	assert.Equal(t, "incorrect username or password", result.Message)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandlers_Current(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "u1", "alice", "secret1")
	sessionID := env.login(t, "alice", "secret1")
	router := authTestRouter(env)

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/auth/current", nil), sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", data["userid"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "user", data["role"])
}

func TestAuthHandlers_CurrentWithoutSession(t *testing.T) {
	env := newTestEnv()
	router := authTestRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/auth/current", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlers_Logout(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "u1", "alice", "secret1")
	sessionID := env.login(t, "alice", "secret1")
	router := authTestRouter(env)

	req := withSessionCookie(jsonRequest(http.MethodPost, "/auth/logout", nil), sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)

	// The session is gone; the cookie no longer authenticates.
	currentReq := withSessionCookie(httptest.NewRequest(http.MethodGet, "/auth/current", nil), sessionID)
	currentRec := httptest.NewRecorder()
	router.ServeHTTP(currentRec, currentReq)
	assert.Equal(t, http.StatusUnauthorized, currentRec.Code)
}

func TestAuthHandlers_LogoutWithoutSession(t *testing.T) {
	env := newTestEnv()
	router := authTestRouter(env)

	req := jsonRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlers_ChangePassword(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "u1", "alice", "secret1")
	sessionID := env.login(t, "alice", "secret1")
	router := authTestRouter(env)

	req := withSessionCookie(jsonRequest(http.MethodPost, "/auth/change-password", model.ChangePasswordRequest{
		OldPassword:     "secret1",
		NewPassword:     "secret2",
		ConfirmPassword: "secret2",
	}), sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Old password stops working, new one logs in.
	oldReq := jsonRequest(http.MethodPost, "/auth/login", model.LoginRequest{Username: "alice", Password: "secret1"})
	oldRec := httptest.NewRecorder()
	router.ServeHTTP(oldRec, oldReq)
	assert.Equal(t, http.StatusUnauthorized, oldRec.Code)

	newReq := jsonRequest(http.MethodPost, "/auth/login", model.LoginRequest{Username: "alice", Password: "secret2"})
	newRec := httptest.NewRecorder()
	router.ServeHTTP(newRec, newReq)
	assert.Equal(t, http.StatusOK, newRec.Code)
}

func TestAuthHandlers_ChangePasswordWrongOld(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, "u1", "alice", "secret1")
	sessionID := env.login(t, "alice", "secret1")
	router := authTestRouter(env)

	req := withSessionCookie(jsonRequest(http.MethodPost, "/auth/change-password", model.ChangePasswordRequest{
		OldPassword:     "wrong",
		NewPassword:     "secret2",
		ConfirmPassword: "secret2",
	}), sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, http.StatusBadRequest, result.Code)
}
