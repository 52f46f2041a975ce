package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPCmd_HasServeSubcommand(t *testing.T) {
	commands := mcpCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "serve")
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresServices(t *testing.T) {
	prevDossier := dossierService
	prevDocument := documentService
	dossierService = nil
	documentService = nil
	defer func() {
		dossierService = prevDossier
		documentService = prevDocument
	}()

	_, err := executeCommand("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dossier service is required")
}
