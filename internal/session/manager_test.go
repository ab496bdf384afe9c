package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hotel-admin/internal/auth"
	"github.com/hongminglow/hotel-admin/internal/models"
)

var guest = models.User{ID: "u-1", Name: "Ana", Email: "ana@example.com", Role: models.RoleGuest}

func loaderOf(u models.User, err error) UserLoader {
	return func(context.Context) (models.User, error) { return u, err }
}

func TestManagerStartsUnresolved(t *testing.T) {
	m := NewManager(NewMemoryStore(), nil)
	v := m.View()
	assert.False(t, v.Resolved)
	assert.False(t, v.Authenticated())
}

func TestRestoreWithoutToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), nil)
	called := false
	err := m.Restore(context.Background(), func(context.Context) (models.User, error) {
		called = true
		return models.User{}, nil
	})
	require.NoError(t, err)
	assert.False(t, called, "no identity lookup without a token")
	v := m.View()
	assert.True(t, v.Resolved)
	assert.False(t, v.Authenticated())
}

func TestRestoreWithToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "opaque"))
	m := NewManager(store, nil)

	require.NoError(t, m.Restore(ctx, loaderOf(guest, nil)))

	v := m.View()
	require.True(t, v.Authenticated())
	assert.Equal(t, models.RoleGuest, v.Role())
	assert.Equal(t, "opaque", m.Current().Token)
}

func TestRestoreDiscardsExpiredJWT(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager("secret", "hotel-api", time.Minute)
	raw, err := tm.Generate(guest)
	require.NoError(t, err)

	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, raw))
	m := NewManager(store, nil)
	m.now = func() time.Time { return time.Now().Add(time.Hour) }

	require.NoError(t, m.Restore(ctx, func(context.Context) (models.User, error) {
		t.Fatal("expired token must not be sent to the API")
		return models.User{}, nil
	}))

	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	v := m.View()
	assert.True(t, v.Resolved)
	assert.False(t, v.Authenticated())
}

func TestRestoreLoadFailureLeavesUnauthenticated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "opaque"))
	m := NewManager(store, nil)

	err := m.Restore(ctx, loaderOf(models.User{}, errors.New("network down")))
	require.Error(t, err)

	v := m.View()
	assert.True(t, v.Resolved)
	assert.False(t, v.Authenticated())
}

func TestRestoreDropsIdentityWhenInvalidatedMidFlight(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "opaque"))
	m := NewManager(store, nil)

	err := m.Restore(ctx, func(ctx context.Context) (models.User, error) {
		require.NoError(t, m.Invalidate(ctx))
		return guest, nil
	})
	require.NoError(t, err)
	assert.False(t, m.View().Authenticated())
	assert.Equal(t, Session{}, m.Current())
}

// racingStore runs onGet after its first read, standing in for a login that
// completes while a restore is between reading the token and installing it.
type racingStore struct {
	Store
	onGet func()
}

func (s *racingStore) Get(ctx context.Context) (string, error) {
	token, err := s.Store.Get(ctx)
	if s.onGet != nil {
		fn := s.onGet
		s.onGet = nil
		fn()
	}
	return token, err
}

func TestRestoreYieldsToLoginDuringTokenRead(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Set(ctx, "old-token"))
	store := &racingStore{Store: inner}
	m := NewManager(store, nil)

	admin := models.User{ID: "u-2", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin}
	store.onGet = func() {
		require.NoError(t, m.Begin(ctx, "new-token", admin))
	}

	loaded := false
	err := m.Restore(ctx, func(context.Context) (models.User, error) {
		loaded = true
		return guest, nil
	})
	require.NoError(t, err)
	assert.False(t, loaded, "stale token must not be used to load an identity")

	persisted, err := inner.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-token", persisted)

	cur := m.Current()
	assert.Equal(t, "new-token", cur.Token)
	require.NotNil(t, cur.User)
	assert.Equal(t, admin, *cur.User)
	assert.Equal(t, models.RoleAdmin, m.View().Role())
}

func TestRestoreYieldsToLogoutDuringTokenRead(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Set(ctx, "old-token"))
	store := &racingStore{Store: inner}
	m := NewManager(store, nil)
	store.onGet = func() { require.NoError(t, m.End(ctx)) }

	require.NoError(t, m.Restore(ctx, loaderOf(guest, nil)))
	assert.Equal(t, Session{}, m.Current())
	assert.True(t, m.View().Resolved)
	assert.False(t, m.View().Authenticated())
}

func TestBeginAndEnd(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, nil)

	require.ErrorIs(t, m.Begin(ctx, "", guest), ErrEmptyToken)

	require.NoError(t, m.Begin(ctx, "tok", guest))
	token, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.True(t, m.View().Authenticated())

	require.NoError(t, m.End(ctx))
	token, err = m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, Session{}, m.Current())
	assert.False(t, m.View().Authenticated())
}

func TestViewIsACopy(t *testing.T) {
	m := NewManager(NewMemoryStore(), nil)
	require.NoError(t, m.Begin(context.Background(), "tok", guest))

	v := m.View()
	v.User.Role = models.RoleAdmin

	assert.Equal(t, models.RoleGuest, m.View().Role())
}
