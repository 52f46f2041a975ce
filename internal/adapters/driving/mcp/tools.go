package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// maxPreviewLines caps how much text a single preview request can pull.
const maxPreviewLines = 200

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	DossierID string `json:"dossier_id" jsonschema:"the dossier to list documents for"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
}

// DocumentSummary describes one catalogued document.
type DocumentSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Size    string `json:"size"`
	HasText bool   `json:"has_text"`
}

// DocumentInfoInput is the input schema for the document_info tool.
type DocumentInfoInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to describe"`
}

// DocumentInfoOutput is the output schema for the document_info tool.
type DocumentInfoOutput struct {
	ID          string            `json:"id"`
	DossierID   string            `json:"dossier_id"`
	DossierName string            `json:"dossier_name"`
	Title       string            `json:"title"`
	Path        string            `json:"path"`
	Kind        string            `json:"kind"`
	Size        string            `json:"size"`
	HasText     bool              `json:"has_text"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ReadPreviewInput is the input schema for the read_preview tool.
type ReadPreviewInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to preview"`
	Lines      int    `json:"lines,omitempty" jsonschema:"maximum lines of text to return (default 20, capped at 200)"`
}

// ReadPreviewOutput is the output schema for the read_preview tool.
type ReadPreviewOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	Size    string `json:"size"`
	HasText bool   `json:"has_text"`
	Preview string `json:"preview,omitempty"`
	Note    string `json:"note,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the catalogued documents in a dossier",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_info",
		Description: "Describe a catalogued document's metadata",
	}, s.handleDocumentInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_preview",
		Description: "Read the first lines of a document's extracted text",
	}, s.handleReadPreview)
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.ListByDossier(ctx, input.DossierID)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentSummary, len(docs)),
		Count:     len(docs),
	}

	for i := range docs {
		output.Documents[i] = DocumentSummary{
			ID:      docs[i].ID,
			Title:   docs[i].Title,
			Path:    docs[i].URI,
			Kind:    docs[i].Kind.String(),
			Size:    domain.FormatSize(docs[i].SizeBytes),
			HasText: docs[i].HasContent(),
		}
	}

	return nil, output, nil
}

// handleDocumentInfo handles the document_info tool invocation.
func (s *Server) handleDocumentInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInfoInput,
) (*mcp.CallToolResult, DocumentInfoOutput, error) {
	details, err := s.ports.Document.GetDetails(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentInfoOutput{}, err
	}

	output := DocumentInfoOutput{
		ID:          details.ID,
		DossierID:   details.DossierID,
		DossierName: details.DossierName,
		Title:       details.Title,
		Path:        details.URI,
		Kind:        details.Kind.String(),
		Size:        domain.FormatSize(details.SizeBytes),
		HasText:     details.HasContent,
		Metadata:    details.Metadata,
	}

	return nil, output, nil
}

// handleReadPreview handles the read_preview tool invocation.
// Documents without extracted text return their metadata with a note
// instead of an error, so assistants can keep going.
func (s *Server) handleReadPreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadPreviewInput,
) (*mcp.CallToolResult, ReadPreviewOutput, error) {
	lines := input.Lines
	if lines <= 0 {
		lines = domain.DefaultPreviewLines
	}
	if lines > maxPreviewLines {
		lines = maxPreviewLines
	}

	details, err := s.ports.Document.GetDetails(ctx, input.DocumentID)
	if err != nil {
		return nil, ReadPreviewOutput{}, err
	}

	output := ReadPreviewOutput{
		ID:      details.ID,
		Title:   details.Title,
		Kind:    details.Kind.String(),
		Size:    domain.FormatSize(details.SizeBytes),
		HasText: details.HasContent,
	}

	preview, err := s.ports.Document.Preview(ctx, input.DocumentID, lines)
	switch {
	case err == nil:
		output.Preview = preview
	case errors.Is(err, domain.ErrBinaryContent):
		output.Note = fmt.Sprintf("no text extracted: %s file", details.Kind)
	case errors.Is(err, domain.ErrFileTooLarge):
		output.Note = "no text extracted: file exceeds the size guard"
	default:
		return nil, ReadPreviewOutput{}, err
	}

	return nil, output, nil
}
