package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlibms/libms/internal/core"
	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
	mockauth "github.com/openlibms/libms/internal/mocks/auth"
)

// fakeUserRepo is an in-memory core.UserRepository for unit tests.
type fakeUserRepo struct {
	byID        map[string]*model.User
	createCalls int
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.createCalls++
	if _, ok := f.byID[u.Userid]; ok {
		return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
	}
	cp := *u
	f.byID[u.Userid] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userid string) (*model.User, error) {
	u, ok := f.byID[userid]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Page(_ context.Context, _ model.PageOptions) ([]*model.User, int64, error) {
	users, _ := f.List(context.Background())
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.byID[u.Userid]; !ok {
		return nil, apperrors.NotFound("user not found")
	}
	cp := *u
	f.byID[u.Userid] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userid, encoded string) error {
	u, ok := f.byID[userid]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	u.Password = encoded
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userid string) error {
	if _, ok := f.byID[userid]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(f.byID, userid)
	return nil
}

func newAuthService(users *fakeUserRepo, sessions *mockauth.MemorySessionStore) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Users:           users,
		Sessions:        sessions,
		SessionDuration: time.Hour,
	})
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		Userid:          "u1001",
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())

	created, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "u1001", created.Userid)
	assert.Equal(t, string(domainauth.RoleUser), created.Role)
	assert.Empty(t, created.Password, "returned user must not carry the credential")

	stored := users.byID["u1001"]
	require.NotNil(t, stored)
	assert.True(t, domainauth.IsHashed(stored.Password), "stored credential must be hashed")
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestAuthService_Register_PasswordMismatchHasNoSideEffects(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())

	req := registerReq()
	req.ConfirmPassword = "different1"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "confirmPassword", apperrors.GetField(err))
	assert.Zero(t, users.createCalls)
}

func TestAuthService_Register_PreconditionOrder(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	// same userid, different username: userid check fires
	req := registerReq()
	req.Username = "bob"
	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "userid")

	// different userid, same username: username check fires
	req = registerReq()
	req.Userid = "u2002"
	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "username")
}

func TestAuthService_Login_FailureModesAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "secret1"})
	require.Error(t, unknownErr)
	assert.True(t, apperrors.IsUnauthorized(unknownErr))

	_, wrongPassErr := svc.Login(ctx, &model.LoginRequest{Username: "alice", Password: "wrongpass"})
	require.Error(t, wrongPassErr)
	assert.True(t, apperrors.IsUnauthorized(wrongPassErr))

	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error(),
		"unknown user and wrong password must be indistinguishable")
}

func TestAuthService_Login_CreatesSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	sess, err := svc.Login(ctx, &model.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "u1001", sess.UserID)
	assert.Equal(t, domainauth.RoleUser, sess.Role)
	assert.True(t, sess.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, sessions.Len())

	got, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestAuthService_Login_LegacyPlaintextCredential(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	// account predating credential hashing
	users.byID["legacy"] = &model.User{
		Userid:   "legacy",
		Username: "carol",
		Password: "plainpass",
		Role:     "admin",
	}

	sess, err := svc.Login(ctx, &model.LoginRequest{Username: "carol", Password: "plainpass"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, sess.Role)

	_, err = svc.Login(ctx, &model.LoginRequest{Username: "carol", Password: "other"})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Logout(t *testing.T) {
	users := newFakeUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	sess, err := svc.Login(ctx, &model.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))

	_, err = svc.GetSession(ctx, sess.ID)
	assert.Error(t, err)

	// empty and repeated logout are no-ops
	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, sess.ID))
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc := newAuthService(newFakeUserRepo(), sessions)
	ctx := context.Background()

	expired := domainauth.Session{
		ID:        "sess-old",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, domainauth.Session{
		ID: expired.ID, UserID: expired.UserID, ExpiresAt: expired.ExpiresAt,
	}))

	_, err := svc.GetSession(ctx, "sess-old")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	// wrong old password
	err = svc.ChangePassword(ctx, ChangePasswordInput{
		Userid: "u1001",
		Request: model.ChangePasswordRequest{
			OldPassword:     "wrongpass",
			NewPassword:     "newsecret1",
			ConfirmPassword: "newsecret1",
		},
	})
	require.Error(t, err)
	assert.Equal(t, "oldPassword", apperrors.GetField(err))

	// success swaps the credential
	err = svc.ChangePassword(ctx, ChangePasswordInput{
		Userid: "u1001",
		Request: model.ChangePasswordRequest{
			OldPassword:     "secret1",
			NewPassword:     "newsecret1",
			ConfirmPassword: "newsecret1",
		},
	})
	require.NoError(t, err)

	stored := users.byID["u1001"]
	assert.True(t, domainauth.IsHashed(stored.Password))
	assert.True(t, domainauth.VerifyPassword("newsecret1", stored.Password))
	assert.False(t, domainauth.VerifyPassword("secret1", stored.Password))
}

func TestAuthService_ChangePassword_LegacyPlaintextUpgraded(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	users.byID["legacy"] = &model.User{Userid: "legacy", Username: "carol", Password: "plainpass"}

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		Userid: "legacy",
		Request: model.ChangePasswordRequest{
			OldPassword:     "plainpass",
			NewPassword:     "newsecret1",
			ConfirmPassword: "newsecret1",
		},
	})
	require.NoError(t, err)
	assert.True(t, domainauth.IsHashed(users.byID["legacy"].Password))
}
