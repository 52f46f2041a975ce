package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dossier-id]",
	Short: "Catalogue the documents in a drop directory",
	Long: `Walks a dossier's directory and updates the catalogue. Scans run
incrementally after the first pass, picking up only changed files.

With --all, every registered dossier is scanned.`,
	RunE: runScan,
}

// scanAll triggers a scan of every registered dossier.
var scanAll bool

var watchCmd = &cobra.Command{
	Use:   "watch [dossier-id]",
	Short: "Watch a drop directory and catalogue changes live",
	Long: `Watches a dossier's directory for file changes and applies them to
the catalogue as they happen. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "Scan every registered dossier")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanOrchestrator == nil {
		return errors.New("scan service not configured")
	}

	ctx := context.Background()

	if scanAll {
		cmd.Println("Scanning all dossiers...")
		if err := scanOrchestrator.ScanAll(ctx); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		cmd.Println("All dossiers scanned.")
		return nil
	}

	if len(args) != 1 {
		return errors.New("provide a dossier ID or use --all")
	}

	dossierID := args[0]
	cmd.Printf("Scanning dossier %s...\n", dossierID)

	if err := scanWithProgress(ctx, cmd, scanOrchestrator, dossierID); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cmd.Printf("Dossier %s scanned.\n", dossierID)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if scanOrchestrator == nil {
		return errors.New("scan service not configured")
	}

	dossierID := args[0]
	cmd.Printf("Watching dossier %s. Press Ctrl+C to stop.\n", dossierID)

	err := scanOrchestrator.Watch(cmd.Context(), dossierID)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// scanWithProgress runs a scan while printing progress updates.
func scanWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	orch driving.ScanOrchestrator,
	dossierID string,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- orch.Scan(ctx, dossierID)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			// Print final status (best effort)
			status, statusErr := orch.Status(ctx, dossierID)
			if statusErr == nil && status != nil && status.DocumentsProcessed > 0 {
				cmd.Printf("\rProcessed %d documents (%d errors)\n",
					status.DocumentsProcessed, status.ErrorCount)
			}
			return err
		case <-ticker.C:
			status, statusErr := orch.Status(ctx, dossierID)
			if statusErr == nil && status != nil && status.DocumentsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.DocumentsProcessed)
				lastCount = status.DocumentsProcessed
			}
		}
	}
}
