package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studyshare/internal/pkg/apperrors"
	"github.com/yigit/studyshare/internal/pkg/auth"
)

func newTestManager(ttl time.Duration) *Manager {
	store := NewStore(ttl, time.Hour, zerolog.Nop())
	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "test-secret",
		TokenExp:    ttl,
		TokenIssuer: "studyshare.test",
	})
	return NewManager(store, tokens)
}

func TestStore_CreateGetDestroy(t *testing.T) {
	s := NewStore(time.Hour, time.Hour, zerolog.Nop())

	sess := s.Create(7)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt)

	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	s.Destroy(sess.ID)
	_, ok = s.Get(sess.ID)
	assert.False(t, ok)

	s.Destroy("unknown")
}

func TestStore_ExpiredSessionIsHiddenAndPruned(t *testing.T) {
	s := NewStore(time.Hour, time.Hour, zerolog.Nop())
	now := time.Now()
	s.now = func() time.Time { return now }

	sess := s.Create(1)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, ok := s.Get(sess.ID)
	assert.False(t, ok)

	s2 := NewStore(20*time.Millisecond, time.Hour, zerolog.Nop())
	s2.Create(1)
	s2.Create(2)
	require.Equal(t, 2, s2.Len())

	time.Sleep(40 * time.Millisecond)
	s2.Prune()
	assert.Equal(t, 0, s2.Len())
}

func TestStore_BackgroundSweep(t *testing.T) {
	s := NewStore(10*time.Millisecond, 10*time.Millisecond, zerolog.Nop())
	s.Create(1)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestManager_LoginResolveLogout(t *testing.T) {
	m := newTestManager(time.Hour)

	token, sess, err := m.Login(3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, int64(3), got.UserID)

	m.Logout(token)
	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManager_ResolveRejectsForgedToken(t *testing.T) {
	m := newTestManager(time.Hour)

	other := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "other-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "studyshare.test",
	})
	_, sess, err := m.Login(3)
	require.NoError(t, err)

	forged, err := other.GenerateToken(sess.ID, 3, time.Now())
	require.NoError(t, err)

	_, err = m.Resolve(forged)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	_, err = m.Resolve("")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}

func TestManager_LogoutIgnoresGarbage(t *testing.T) {
	m := newTestManager(time.Hour)
	_, _, err := m.Login(1)
	require.NoError(t, err)

	m.Logout("not-a-token")
	assert.Equal(t, 1, m.Store().Len())
}
