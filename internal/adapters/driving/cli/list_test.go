package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Use(t *testing.T) {
	assert.Equal(t, "list [dossier-id]", listCmd.Use)
}

func TestListCmd_ShowsInventory(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("list", "dos-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp (/in/acme)")
	assert.Contains(t, out, "passport.pdf")
	assert.Contains(t, out, "statements/jan.csv")
	assert.Contains(t, out, "PDF document")
	assert.Contains(t, out, "Total: 2 files")
}

func TestListCmd_EmptyDirectory(t *testing.T) {
	fixtures, cleanup := setupTestServices()
	defer cleanup()
	fixtures.dossiers.entries = nil

	out, err := executeCommand("list", "dos-1")

	require.NoError(t, err)
	assert.Contains(t, out, "(empty)")
}

func TestListCmd_RequiresOneArg(t *testing.T) {
	_, err := executeCommand("list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
