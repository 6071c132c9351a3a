package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/domain/model"
	apperrors "github.com/openlibms/libms/internal/errors"
)

func newUserService(users *fakeUserRepo) *UserService {
	return NewUserService(UserServiceOptions{Users: users})
}

func TestUserService_Create_EncodesPasswordAndDefaultsRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)

	created, err := svc.Create(context.Background(), &model.User{
		Userid:   "u1",
		Username: "alice",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", created.Role)
	assert.Empty(t, created.Password)

	stored := users.byID["u1"]
	assert.True(t, domainauth.IsHashed(stored.Password))
}

func TestUserService_Create_BlankDepartidBecomesNil(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)

	empty := ""
	_, err := svc.Create(context.Background(), &model.User{
		Userid:   "u1",
		Username: "alice",
		Departid: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, users.byID["u1"].Departid)
}

func TestUserService_Create_InvalidUser(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), &model.User{Username: "alice"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "userid", apperrors.GetField(err))

	_, err = svc.Create(context.Background(), &model.User{Userid: "u1", Username: "alice", Password: "abc"})
	require.Error(t, err)
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestUserService_Update_EmptyPasswordKeepsStored(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.User{Userid: "u1", Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	originalHash := users.byID["u1"].Password

	updated, err := svc.Update(ctx, &model.User{Userid: "u1", Username: "alice-renamed"})
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Username)
	assert.Empty(t, updated.Password)
	assert.Equal(t, originalHash, users.byID["u1"].Password, "empty password keeps the stored credential")
}

func TestUserService_Update_NewPasswordReplacesStored(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.User{Userid: "u1", Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	originalHash := users.byID["u1"].Password

	_, err = svc.Update(ctx, &model.User{Userid: "u1", Username: "alice", Password: "newsecret1"})
	require.NoError(t, err)

	stored := users.byID["u1"].Password
	assert.NotEqual(t, originalHash, stored)
	assert.True(t, domainauth.VerifyPassword("newsecret1", stored))
}

func TestUserService_Update_MissingUser(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.Update(context.Background(), &model.User{Userid: "missing", Username: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_ListAndPage_Sanitized(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.User{Userid: "u1", Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Password)

	paged, total, err := svc.Page(ctx, model.PageOptions{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, paged, 1)
	assert.Empty(t, paged[0].Password)
}
