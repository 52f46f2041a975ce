package driven

import (
	"context"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// DocumentStore persists catalogued documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByURI retrieves a document by its file path within a dossier.
	// Used when applying change events, which carry paths rather than IDs.
	GetDocumentByURI(ctx context.Context, dossierID, uri string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for a dossier.
	ListDocuments(ctx context.Context, dossierID string) ([]domain.Document, error)

	// CountDocuments returns the document count for a dossier.
	CountDocuments(ctx context.Context, dossierID string) (int, error)
}

// DossierStore persists dossier registrations.
type DossierStore interface {
	// Save stores or updates a dossier.
	Save(ctx context.Context, dossier domain.Dossier) error

	// Get retrieves a dossier by ID.
	Get(ctx context.Context, id string) (*domain.Dossier, error)

	// Delete removes a dossier.
	Delete(ctx context.Context, id string) error

	// List returns all registered dossiers.
	List(ctx context.Context) ([]domain.Dossier, error)
}

// ScanStateStore persists scan progress per dossier.
type ScanStateStore interface {
	// Save stores or updates scan state.
	Save(ctx context.Context, state domain.ScanState) error

	// Get retrieves scan state for a dossier.
	Get(ctx context.Context, dossierID string) (*domain.ScanState, error)

	// Delete removes scan state for a dossier.
	Delete(ctx context.Context, dossierID string) error
}

// ExclusionStore persists excluded files.
type ExclusionStore interface {
	// Add creates a new exclusion.
	Add(ctx context.Context, exclusion *domain.Exclusion) error

	// Remove deletes an exclusion by ID.
	Remove(ctx context.Context, id string) error

	// GetByDossierID returns all exclusions for a dossier.
	GetByDossierID(ctx context.Context, dossierID string) ([]domain.Exclusion, error)

	// IsExcluded checks if a URI is excluded for a dossier.
	IsExcluded(ctx context.Context, dossierID, uri string) (bool, error)

	// List returns all exclusions.
	List(ctx context.Context) ([]domain.Exclusion, error)
}
