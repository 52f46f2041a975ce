package driving

import (
	"context"
	"time"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// DocumentService manages catalogued documents within dossiers.
type DocumentService interface {
	// ListByDossier returns all documents for a dossier.
	ListByDossier(ctx context.Context, dossierID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the full extracted text of a document.
	// Returns domain.ErrBinaryContent for documents without text.
	GetContent(ctx context.Context, documentID string) (string, error)

	// Preview returns the first n lines of a document's text.
	// Returns domain.ErrBinaryContent for documents without text.
	Preview(ctx context.Context, documentID string, lines int) (string, error)

	// GetDetails returns metadata for display.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Exclude removes a document and marks its file to skip on re-scan.
	Exclude(ctx context.Context, documentID, reason string) error

	// Open opens the document in the default application.
	Open(ctx context.Context, documentID string) error
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// DossierID links to the parent dossier.
	DossierID string

	// DossierName is the human-readable dossier name.
	DossierName string

	// Title is the document title.
	Title string

	// URI is the file path.
	URI string

	// Kind is the detected file format.
	Kind domain.FileKind

	// SizeBytes is the file size at catalogue time.
	SizeBytes int64

	// HasContent reports whether text was extracted.
	HasContent bool

	// CreatedAt is when the document was first catalogued.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time

	// Metadata contains flattened key-value pairs for display.
	Metadata map[string]string
}
