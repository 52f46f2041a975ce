package driven

import (
	"context"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// Normaliser transforms raw files into catalogued documents.
// Each normaliser handles specific MIME types (e.g., PDF, plain text).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw file into a document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Document is the normalised document. Content is populated only
	// for formats with extractable text.
	Document domain.Document
}

// NormaliserRegistry selects the appropriate normaliser for a raw file.
type NormaliserRegistry interface {
	// Register adds a normaliser to the registry.
	Register(n Normaliser)

	// Normalise routes the raw file to the highest-priority normaliser
	// supporting its MIME type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}
