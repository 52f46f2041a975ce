package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dossierCmd = &cobra.Command{
	Use:   "dossier",
	Short: "Manage dossier drop directories",
	Long:  `Register, list, or remove the per-client directories the catalogue tracks.`,
}

var dossierAddCmd = &cobra.Command{
	Use:   "add [name] [path]",
	Short: "Register a drop directory as a dossier",
	Long: `Registers a directory as a dossier. The directory is created if it
does not exist yet. Files already in the directory are picked up by the
next scan.`,
	Args: cobra.ExactArgs(2),
	RunE: runDossierAdd,
}

var dossierListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered dossiers",
	RunE:  runDossierList,
}

var dossierRemoveCmd = &cobra.Command{
	Use:   "remove [dossier-id]",
	Short: "Unregister a dossier",
	Long: `Removes a dossier and its catalogued documents. The files on disk
are never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runDossierRemove,
}

func init() {
	dossierCmd.AddCommand(dossierAddCmd)
	dossierCmd.AddCommand(dossierListCmd)
	dossierCmd.AddCommand(dossierRemoveCmd)
	rootCmd.AddCommand(dossierCmd)
}

func runDossierAdd(cmd *cobra.Command, args []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	ctx := context.Background()

	dossier, err := dossierService.Register(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to register dossier: %w", err)
	}

	cmd.Printf("Registered dossier %q\n", dossier.Name)
	cmd.Printf("  ID:   %s\n", dossier.ID)
	cmd.Printf("  Path: %s\n", dossier.Path)
	cmd.Printf("\nRun 'kyc scan %s' to catalogue its documents.\n", dossier.ID)
	return nil
}

func runDossierList(cmd *cobra.Command, _ []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	ctx := context.Background()

	dossiers, err := dossierService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dossiers: %w", err)
	}

	if len(dossiers) == 0 {
		cmd.Println("No dossiers registered. Run 'kyc dossier add [name] [path]' to add one.")
		return nil
	}

	cmd.Println("Registered dossiers:")
	cmd.Println()
	for i := range dossiers {
		cmd.Printf("  %s\n", dossiers[i].ID)
		cmd.Printf("    Name: %s\n", dossiers[i].Name)
		cmd.Printf("    Path: %s\n", dossiers[i].Path)
		cmd.Println()
	}

	cmd.Printf("Total: %d dossiers\n", len(dossiers))
	return nil
}

func runDossierRemove(cmd *cobra.Command, args []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	ctx := context.Background()

	if err := dossierService.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove dossier: %w", err)
	}

	cmd.Printf("Dossier %s removed. Files on disk were not touched.\n", args[0])
	return nil
}
