package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages catalogued documents within dossiers.
type DocumentService struct {
	docStore       driven.DocumentStore
	dossierStore   driven.DossierStore
	exclusionStore driven.ExclusionStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	dossierStore driven.DossierStore,
	exclusionStore driven.ExclusionStore,
) *DocumentService {
	return &DocumentService{
		docStore:       docStore,
		dossierStore:   dossierStore,
		exclusionStore: exclusionStore,
	}
}

// ListByDossier returns all documents for a dossier.
func (s *DocumentService) ListByDossier(ctx context.Context, dossierID string) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx, dossierID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent returns the full extracted text of a document.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if s.docStore == nil {
		return "", domain.ErrNotImplemented
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	if !doc.HasContent() {
		return "", fmt.Errorf("%w: %s has no extracted text (%s)",
			domain.ErrBinaryContent, doc.Title, doc.Kind.Description())
	}

	return doc.Content, nil
}

// Preview returns the first n lines of a document's text.
func (s *DocumentService) Preview(ctx context.Context, documentID string, lines int) (string, error) {
	if lines <= 0 {
		lines = domain.DefaultPreviewLines
	}

	content, err := s.GetContent(ctx, documentID)
	if err != nil {
		return "", err
	}

	return headLines(content, lines), nil
}

// GetDetails returns metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var dossierName string
	if s.dossierStore != nil {
		if dossier, err := s.dossierStore.Get(ctx, doc.DossierID); err == nil {
			dossierName = dossier.Name
		}
	}

	// Flatten metadata to string map
	metadata := make(map[string]string)
	for key, value := range doc.Metadata {
		metadata[key] = fmt.Sprintf("%v", value)
	}

	return &driving.DocumentDetails{
		ID:          doc.ID,
		DossierID:   doc.DossierID,
		DossierName: dossierName,
		Title:       doc.Title,
		URI:         doc.URI,
		Kind:        doc.Kind,
		SizeBytes:   doc.SizeBytes,
		HasContent:  doc.HasContent(),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Metadata:    metadata,
	}, nil
}

// Exclude removes a document and marks its file to skip on re-scan.
func (s *DocumentService) Exclude(ctx context.Context, documentID, reason string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}

	// Get document first to capture URI
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if s.exclusionStore != nil {
		exclusion := &domain.Exclusion{
			ID:         fmt.Sprintf("excl-%s", documentID),
			DossierID:  doc.DossierID,
			DocumentID: documentID,
			URI:        doc.URI,
			Reason:     reason,
			ExcludedAt: time.Now(),
		}
		if err := s.exclusionStore.Add(ctx, exclusion); err != nil {
			return fmt.Errorf("failed to add exclusion: %w", err)
		}
	}

	return s.docStore.DeleteDocument(ctx, documentID)
}

// Open opens the document in the default application.
func (s *DocumentService) Open(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	return openPath(doc.URI)
}

// openPath opens a file using the system default handler.
func openPath(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// headLines returns the first n lines of text, with a truncation marker
// when content was cut off.
func headLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
