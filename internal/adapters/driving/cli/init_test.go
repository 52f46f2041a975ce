package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_Use(t *testing.T) {
	assert.Equal(t, "init [path]", initCmd.Use)
}

func TestInitCmd_RegistersDirectory(t *testing.T) {
	fixtures, cleanup := setupTestServices()
	defer cleanup()
	fixtures.dossiers.dossier = nil // let the mock echo the registration

	out, err := executeCommand("init", "/srv/kyc/acme")

	require.NoError(t, err)
	assert.Contains(t, out, "Initialised dossier")
	assert.Contains(t, out, `"acme"`)
	assert.Contains(t, out, "kyc scan")
}

func TestInitCmd_NameFlagOverridesDirectoryName(t *testing.T) {
	fixtures, cleanup := setupTestServices()
	defer cleanup()
	fixtures.dossiers.dossier = nil
	defer func() { initName = "" }()

	out, err := executeCommand("init", "/srv/kyc/acme", "--name", "Acme Corp")

	require.NoError(t, err)
	assert.Contains(t, out, `"Acme Corp"`)
}

func TestInitCmd_RequiresOneArg(t *testing.T) {
	_, err := executeCommand("init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
