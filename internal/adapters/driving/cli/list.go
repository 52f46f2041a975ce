package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [dossier-id]",
	Short: "List the files currently in a drop directory",
	Long: `Walks a dossier's drop directory recursively and lists what is on
disk right now, without consulting the catalogue. Dotfiles are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	ctx := context.Background()
	dossierID := args[0]

	dossier, err := dossierService.Get(ctx, dossierID)
	if err != nil {
		return fmt.Errorf("failed to get dossier: %w", err)
	}

	entries, err := dossierService.Inventory(ctx, dossierID)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	cmd.Printf("%s (%s)\n\n", dossier.Name, dossier.Path)

	if len(entries) == 0 {
		cmd.Println("  (empty)")
		return nil
	}

	var total int64
	for _, entry := range entries {
		cmd.Printf("  %-50s %8s  %s\n",
			entry.RelPath, domain.FormatSize(entry.SizeBytes), entry.Kind.Description())
		total += entry.SizeBytes
	}

	cmd.Printf("\nTotal: %d files, %s\n", len(entries), domain.FormatSize(total))
	return nil
}
