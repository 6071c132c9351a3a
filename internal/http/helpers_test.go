package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	mockauth "github.com/openlibms/libms/internal/mocks/auth"
	"github.com/openlibms/libms/internal/service"
)

// memUserRepo is an in-memory user repository for handler tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Userid]; ok {
		return nil, apperrors.Conflict("user already exists")
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, apperrors.Conflict("username already exists")
		}
	}
	cp := *u
	m.users[u.Userid] = &cp
	out := cp
	return &out, nil
}

func (m *memUserRepo) GetByID(_ context.Context, userid string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userid]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	out := *u
	return &out, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (m *memUserRepo) List(_ context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Userid < out[j].Userid })
	return out, nil
}

func (m *memUserRepo) Page(_ context.Context, opts model.PageOptions) ([]*model.User, int64, error) {
	all, _ := m.List(context.Background())
	matched := make([]*model.User, 0, len(all))
	for _, u := range all {
		if opts.Keyword == "" ||
			strings.Contains(u.Userid, opts.Keyword) ||
			strings.Contains(u.Username, opts.Keyword) {
			matched = append(matched, u)
		}
	}
	total := int64(len(matched))
	start := (opts.Page - 1) * opts.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *memUserRepo) Update(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Userid]; !ok {
		return nil, apperrors.NotFound("user not found")
	}
	cp := *u
	m.users[u.Userid] = &cp
	out := cp
	return &out, nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, userid, encoded string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userid]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	u.Password = encoded
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, userid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userid]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(m.users, userid)
	return nil
}

// testEnv bundles the services and session store used by handler tests.
type testEnv struct {
	users    *memUserRepo
	sessions *mockauth.MemorySessionStore
	auth     *service.AuthService
}

func newTestEnv() *testEnv {
	users := newMemUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:    users,
		Sessions: sessions,
	})
	return &testEnv{users: users, sessions: sessions, auth: auth}
}

// seedUser stores an account with an already-hashed credential.
func (e *testEnv) seedUser(t *testing.T, userid, username, password string) {
	t.Helper()
	encoded, err := domainauth.EncodePassword(password)
	require.NoError(t, err)
	_, err = e.users.Create(context.Background(), &model.User{
		Userid:   userid,
		Username: username,
		Password: encoded,
		Role:     string(domainauth.RoleUser),
	})
	require.NoError(t, err)
}

// login runs the real login flow and returns the session cookie value.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	session, err := e.auth.Login(context.Background(), &model.LoginRequest{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return session.ID
}

// adminSession stores a session directly with the given role.
func (e *testEnv) adminSession(t *testing.T, id string) {
	t.Helper()
	err := e.sessions.Save(context.Background(), domainauth.Session{
		ID:        id,
		UserID:    "admin1",
		Username:  "admin",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSessionCookie(req *http.Request, sessionID string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	return req
}

// decodeResult unmarshals the response envelope.
func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result {
	t.Helper()
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}
