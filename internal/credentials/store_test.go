package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		credDir := filepath.Join(tmpDir, "creds")

		store, err := NewStore(credDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(credDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestStore_ReadWriteClear(t *testing.T) {
	t.Run("empty slot reads as ErrNoCredential", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("write then read round-trips the token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("token-abc"))

		token, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "token-abc", token)
	})

	t.Run("write replaces the previous token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("token-a"))
		require.NoError(t, store.Write("token-b"))

		token, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "token-b", token)
	})

	t.Run("rejects empty tokens", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		assert.Error(t, store.Write(""))
	})

	t.Run("clear empties the slot", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write("token-abc"))
		require.NoError(t, store.Clear())

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("corrupt slot file reads as ErrCorruptSlot", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "credentials.json"), []byte("{not json"), 0600))

		_, err = store.Read()
		assert.ErrorIs(t, err, ErrCorruptSlot)
	})

	t.Run("clear recovers a corrupt slot file", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "credentials.json"), []byte("{not json"), 0600))

		require.NoError(t, store.Clear())

		// Slot is usable again
		_, err = store.Read()
		assert.ErrorIs(t, err, ErrNoCredential)
		require.NoError(t, store.Write("token-abc"))
	})

	t.Run("clear on an empty slot is a no-op", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Clear())
	})

	t.Run("slot file is private", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Write("token-abc"))

		info, err := os.Stat(filepath.Join(tmpDir, "credentials.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestStore_Subscribe(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	type change struct {
		token   string
		present bool
	}

	var got []change
	cancel := store.Subscribe(func(token string, present bool) {
		got = append(got, change{token, present})
	})

	require.NoError(t, store.Write("token-abc"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear()) // no-op, must not notify

	require.Len(t, got, 2)
	assert.Equal(t, change{"token-abc", true}, got[0])
	assert.Equal(t, change{"", false}, got[1])

	cancel()
	require.NoError(t, store.Write("token-xyz"))
	assert.Len(t, got, 2)
}
