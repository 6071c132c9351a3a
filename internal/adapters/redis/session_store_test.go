package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/openlibms/libms/internal/domain/auth"
	"github.com/openlibms/libms/internal/testutil"
)

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    "u1",
		Username:  "alice",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("sess-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Username, got.Username)
	assert.Equal(t, sess.Role, got.Role)

	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_GetUnknownIsNotFound(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_SaveExpiredRejected(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	err := store.Save(context.Background(), testSession("sess-exp", -time.Minute))
	assert.Error(t, err)
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	assert.NoError(t, store.Delete(ctx, "never-existed"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStoreWithPrefix(client, "libms:sess:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-2", time.Hour)))

	val := client.Get(ctx, "libms:sess:sess-2")
	require.NoError(t, val.Err())
}
