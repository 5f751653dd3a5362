package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	return s
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("starts signed out", func(t *testing.T) {
		s := newTestSession(t)
		assert.False(t, s.Authenticated())
		assert.Empty(t, s.Token())
		assert.Nil(t, s.User())
	})

	t.Run("set persists across reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		s, err := New(path)
		require.NoError(t, err)
		require.NoError(t, s.Set("tok-123", User{ID: "u1", Name: "Priya", Email: "priya@example.com"}))

		reloaded, err := New(path)
		require.NoError(t, err)
		require.NoError(t, reloaded.Initialize())

		assert.True(t, reloaded.Authenticated())
		assert.Equal(t, "tok-123", reloaded.Token())
		require.NotNil(t, reloaded.User())
		assert.Equal(t, "Priya", reloaded.User().Name)
	})

	t.Run("clear removes credentials on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		s, err := New(path)
		require.NoError(t, err)
		require.NoError(t, s.Set("tok-456", User{ID: "u2"}))
		require.NoError(t, s.Clear())

		assert.False(t, s.Authenticated())

		// No stale token may survive on disk.
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "tok-456")

		reloaded, err := New(path)
		require.NoError(t, err)
		require.NoError(t, reloaded.Initialize())
		assert.False(t, reloaded.Authenticated())
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		s := newTestSession(t)
		require.NoError(t, s.Clear())
		require.NoError(t, s.Clear())
		assert.False(t, s.Authenticated())
	})
}

func TestThemeSurvivesClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("tok", User{ID: "u"}))
	require.NoError(t, s.SetTheme("light"))
	require.NoError(t, s.Clear())

	reloaded, err := New(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Initialize())

	assert.Equal(t, "light", reloaded.Theme())
	assert.False(t, reloaded.Authenticated())
}

func TestInitializeToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := New(path)
	require.NoError(t, err)
	assert.NoError(t, s.Initialize())
	assert.False(t, s.Authenticated())
}
