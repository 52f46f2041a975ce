package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create and register a drop directory",
	Long: `Creates a drop directory (if needed) and registers it as a dossier
in one step. The dossier is named after the directory unless --name is
given.

Examples:
  kyc init ./clients/acme-corp
  kyc init /srv/kyc/acme --name "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

// initName overrides the dossier name derived from the directory.
var initName string

func init() {
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Dossier name (defaults to the directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	path := args[0]
	name := initName
	if name == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		name = filepath.Base(abs)
	}

	dossier, err := dossierService.Register(context.Background(), name, path)
	if err != nil {
		return fmt.Errorf("failed to initialise dossier: %w", err)
	}

	cmd.Printf("Initialised dossier %q at %s\n", dossier.Name, dossier.Path)
	cmd.Printf("  ID: %s\n", dossier.ID)
	cmd.Println("\nDrop documents into the directory, then run:")
	cmd.Printf("  kyc scan %s\n", dossier.ID)
	return nil
}
