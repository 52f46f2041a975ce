package file

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore(t *testing.T) {
	t.Run("starts empty without a file", func(t *testing.T) {
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)

		_, ok := store.Get("anything")
		assert.False(t, ok)
	})

	t.Run("set persists immediately", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewConfigStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.Set("agent.provider", "ollama"))

		reopened, err := NewConfigStore(dir)
		require.NoError(t, err)
		assert.Equal(t, "ollama", reopened.GetString("agent.provider"))
	})

	t.Run("nested tables flatten to dot notation", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := "[agent]\nprovider = \"anthropic\"\npreview_lines = 20\n\n[agent.guards]\nmax_file_bytes = 512000\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		store, err := NewConfigStore(dir)
		require.NoError(t, err)

		assert.Equal(t, "anthropic", store.GetString("agent.provider"))
		assert.Equal(t, 20, store.GetInt("agent.preview_lines"))
		assert.Equal(t, 512000, store.GetInt("agent.guards.max_file_bytes"))
	})

	t.Run("typed getters tolerate wrong types", func(t *testing.T) {
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set("key", "value"))
		assert.Equal(t, 0, store.GetInt("key"))
		assert.False(t, store.GetBool("key"))

		require.NoError(t, store.Set("num", 7))
		assert.Equal(t, "", store.GetString("num"))
	})

	t.Run("file has restricted permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not meaningful on windows")
		}
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Set("agent.api_key", "secret"))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("path points at config.toml", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewConfigStore(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})
}
