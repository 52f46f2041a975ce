package mcp

import (
	"context"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// mockDossierService is a mock implementation of driving.DossierService.
type mockDossierService struct {
	dossiers []domain.Dossier
	dossier  *domain.Dossier
	err      error
}

func (m *mockDossierService) Register(_ context.Context, _, _ string) (*domain.Dossier, error) {
	return m.dossier, m.err
}

func (m *mockDossierService) Get(_ context.Context, _ string) (*domain.Dossier, error) {
	return m.dossier, m.err
}

func (m *mockDossierService) List(_ context.Context) ([]domain.Dossier, error) {
	return m.dossiers, m.err
}

func (m *mockDossierService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDossierService) Inventory(_ context.Context, _ string) ([]driving.InventoryEntry, error) {
	return nil, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.Document
	document   *domain.Document
	content    string
	preview    string
	previewErr error
	details    *driving.DocumentDetails
	err        error
}

func (m *mockDocumentService) ListByDossier(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Preview(_ context.Context, _ string, _ int) (string, error) {
	if m.previewErr != nil {
		return "", m.previewErr
	}
	return m.preview, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Exclude(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}
