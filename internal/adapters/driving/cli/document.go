package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage catalogued documents",
	Long:  `List, view, preview, exclude, or open catalogued documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [dossier-id]",
	Short: "List documents for a dossier",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print the extracted text of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentPreviewCmd = &cobra.Command{
	Use:   "preview [doc-id]",
	Short: "Print the first lines of a document's text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentPreview,
}

var documentExcludeCmd = &cobra.Command{
	Use:   "exclude [doc-id]",
	Short: "Exclude a document from the catalogue",
	Long:  `Removes a document from the catalogue and marks its file to be skipped by future scans. The file itself is not touched.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentExclude,
}

var documentSummariseCmd = &cobra.Command{
	Use:   "summarise [doc-id]",
	Short: "Summarise a document using the configured model",
	Long:  `Asks the configured language model for a short summary of one document's extracted text. Documents without extracted text cannot be summarised.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSummarise,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [doc-id]",
	Short: "Open the document file in the default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

// excludeReason is a flag for the exclude command.
var excludeReason string

// previewLines is a flag for the preview command.
var previewLines int

func init() {
	documentExcludeCmd.Flags().StringVarP(&excludeReason, "reason", "r", "", "Reason for excluding the document")
	documentPreviewCmd.Flags().IntVarP(&previewLines, "lines", "n", 0, "Number of lines to show (0 = default)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentPreviewCmd)
	documentCmd.AddCommand(documentExcludeCmd)
	documentCmd.AddCommand(documentSummariseCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dossierID := args[0]
	ctx := context.Background()

	docs, err := documentService.ListByDossier(ctx, dossierID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents catalogued for dossier: %s\n", dossierID)
		return nil
	}

	cmd.Printf("Documents for dossier %s:\n\n", dossierID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    Kind:  %s, %s\n", docs[i].Kind.Description(), domain.FormatSize(docs[i].SizeBytes))
		if !docs[i].HasContent() {
			cmd.Printf("    Text:  (none extracted)\n")
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	details, err := documentService.GetDetails(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", details.ID)
	cmd.Printf("  Title:    %s\n", details.Title)
	cmd.Printf("  Dossier:  %s (%s)\n", details.DossierName, details.DossierID)
	cmd.Printf("  Path:     %s\n", details.URI)
	cmd.Printf("  Kind:     %s\n", details.Kind.Description())
	cmd.Printf("  Size:     %s\n", domain.FormatSize(details.SizeBytes))
	cmd.Printf("  Text:     %s\n", yesNo(details.HasContent))
	cmd.Printf("  Created:  %s\n", details.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", details.UpdatedAt.Format("2006-01-02 15:04:05"))

	if len(details.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		for k, v := range details.Metadata {
			cmd.Printf("    %s: %s\n", k, v)
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := documentService.GetContent(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentPreview(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	preview, err := documentService.Preview(context.Background(), args[0], previewLines)
	if err != nil {
		return fmt.Errorf("failed to preview document: %w", err)
	}

	cmd.Println(preview)
	return nil
}

func runDocumentExclude(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]

	reason := excludeReason
	if reason == "" {
		reason = "excluded via CLI"
	}

	if err := documentService.Exclude(context.Background(), docID, reason); err != nil {
		return fmt.Errorf("failed to exclude document: %w", err)
	}

	cmd.Printf("Document %s excluded from the catalogue.\n", docID)
	return nil
}

func runDocumentSummarise(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if agentBuilder == nil {
		return errors.New("agent service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	details, err := documentService.GetDetails(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	agent, err := agentBuilder(details.DossierID)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	summary, err := agent.Summarise(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to summarise document: %w", err)
	}

	cmd.Printf("Summary of %s:\n\n%s\n", details.Title, summary)
	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]

	if err := documentService.Open(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %s in default application.\n", docID)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
