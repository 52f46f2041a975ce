package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalogue status",
	Long:  `Shows the registered dossiers, their document counts, the configured assistant, and the catalogue location.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if dossierService == nil {
		return errors.New("dossier service not configured")
	}

	ctx := context.Background()

	dossiers, err := dossierService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dossiers: %w", err)
	}

	cmd.Println("Catalogue Status")
	cmd.Println("================")
	cmd.Println()

	if storagePath != "" {
		cmd.Printf("Database: %s\n\n", storagePath)
	}

	if len(dossiers) == 0 {
		cmd.Println("No dossiers registered.")
	} else {
		cmd.Printf("Dossiers: %d\n\n", len(dossiers))
		for i := range dossiers {
			cmd.Printf("  %s  %s\n", dossiers[i].ID, dossiers[i].Name)
			cmd.Printf("    Path: %s\n", dossiers[i].Path)

			if documentService != nil {
				docs, listErr := documentService.ListByDossier(ctx, dossiers[i].ID)
				if listErr == nil {
					cmd.Printf("    Documents: %d\n", len(docs))
				}
			}
			if scanOrchestrator != nil {
				status, statusErr := scanOrchestrator.Status(ctx, dossiers[i].ID)
				if statusErr == nil && status.Running {
					cmd.Printf("    Scan: running (%d processed)\n", status.DocumentsProcessed)
				}
			}
			cmd.Println()
		}
	}

	if settingsService != nil {
		settings, settingsErr := settingsService.Get()
		if settingsErr == nil {
			cmd.Println("Assistant:")
			cmd.Printf("  Provider: %s\n", settings.Provider.Description())
			cmd.Printf("  Model:    %s\n", orUnset(settings.Model))
			if err := settingsService.Validate(); err != nil {
				cmd.Printf("  Status:   not configured (%v)\n", err)
			} else {
				cmd.Printf("  Status:   configured\n")
			}
		}
	}

	return nil
}
