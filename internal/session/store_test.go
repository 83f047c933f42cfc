package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveGetClear(t *testing.T) {
	s := NewStore(NewMemoryBackend())

	_, ok := s.Token()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Save("tok-1"))
	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.True(t, s.IsAuthenticated())

	require.NoError(t, s.Clear())
	_, ok = s.Token()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_SaveRejectsEmpty(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	assert.Error(t, s.Save(""))
}

func TestStore_ListenersNotifiedOnSaveAndClear(t *testing.T) {
	s := NewStore(NewMemoryBackend())

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	require.NoError(t, s.Save("abc"))
	require.NoError(t, s.Clear())

	require.Len(t, events, 2)
	assert.Equal(t, Event{Authenticated: true, Token: "abc"}, events[0])
	assert.Equal(t, Event{Authenticated: false}, events[1])

	unsubscribe()
	require.NoError(t, s.Save("def"))
	assert.Len(t, events, 2)
}

func TestStore_LogoutClearsThenRedirects(t *testing.T) {
	var stillAuthenticated, redirected bool
	var s *Store
	s = NewStore(NewMemoryBackend(), WithLogoutRedirect(func() {
		redirected = true
		stillAuthenticated = s.IsAuthenticated()
	}))

	require.NoError(t, s.Save("abc"))
	require.NoError(t, s.SaveRefreshToken("refresh"))
	require.NoError(t, s.Logout())

	assert.True(t, redirected)
	assert.False(t, stillAuthenticated)
	_, ok, err := s.RefreshToken()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileBackend_PersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := NewStore(NewFileBackend(path))
	require.NoError(t, first.Save("persisted"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := NewStore(NewFileBackend(path))
	token, ok := second.Token()
	assert.True(t, ok)
	assert.Equal(t, "persisted", token)
}

func TestFileBackend_CorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(NewFileBackend(path))

	_, _, err := s.Load()
	assert.Error(t, err)
	assert.Error(t, s.Save("abc"))
	assert.False(t, s.IsAuthenticated())
}

func TestFileBackend_UnwritableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	s := NewStore(NewFileBackend(filepath.Join(dir, "session.json")))
	assert.Error(t, s.Save("abc"))
}
