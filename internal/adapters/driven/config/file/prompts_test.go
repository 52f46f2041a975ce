package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

func TestPromptStore(t *testing.T) {
	t.Run("constructor does no IO", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "prompts")
		_, err := NewPromptStore(dir)
		require.NoError(t, err)

		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("first load creates defaults on disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "prompts")
		store, err := NewPromptStore(dir)
		require.NoError(t, err)

		prompt, err := store.Load(driven.PromptAgentSystem)
		require.NoError(t, err)
		assert.Contains(t, prompt, "KYC document assistant")

		_, err = os.Stat(filepath.Join(dir, driven.PromptAgentSystem+".txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "README.md"))
		assert.NoError(t, err)
	})

	t.Run("user edits win over defaults", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "prompts")
		require.NoError(t, os.MkdirAll(dir, 0700))
		custom := "Answer in French."
		path := filepath.Join(dir, driven.PromptAgentSystem+".txt")
		require.NoError(t, os.WriteFile(path, []byte(custom+"\n"), 0600))

		store, err := NewPromptStore(dir)
		require.NoError(t, err)

		prompt, err := store.Load(driven.PromptAgentSystem)
		require.NoError(t, err)
		assert.Equal(t, custom, prompt)
	})

	t.Run("reload picks up file changes", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "prompts")
		store, err := NewPromptStore(dir)
		require.NoError(t, err)

		_, err = store.Load(driven.PromptSummarise)
		require.NoError(t, err)

		updated := "Shorter summary of %s please, %d characters."
		path := filepath.Join(dir, driven.PromptSummarise+".txt")
		require.NoError(t, os.WriteFile(path, []byte(updated), 0600))

		store.Reload()
		prompt, err := store.Load(driven.PromptSummarise)
		require.NoError(t, err)
		assert.Equal(t, updated, prompt)
	})

	t.Run("unknown prompt errors", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "prompts")
		store, err := NewPromptStore(dir)
		require.NoError(t, err)

		_, err = store.Load("no_such_prompt")
		assert.Error(t, err)
	})
}
