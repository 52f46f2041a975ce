package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// executeCommand runs the root command with the given args and captures
// its output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kyc", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "init")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "dossier")
	assert.Contains(t, commandNames, "scan")
	assert.Contains(t, commandNames, "watch")
	assert.Contains(t, commandNames, "document")
	assert.Contains(t, commandNames, "settings")
	assert.Contains(t, commandNames, "status")
	assert.Contains(t, commandNames, "chat")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}
