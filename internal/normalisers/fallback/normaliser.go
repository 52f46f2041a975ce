// Package fallback normalises any file the format-specific normalisers do
// not claim. Documents are catalogued metadata-only so the inventory stays
// complete even for formats outside the inbox contract.
package fallback

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser catalogues unrecognised files metadata-only.
type Normaliser struct{}

// New creates a new fallback normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the wildcard registration key.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"*"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 1
}

// Normalise catalogues the file without extracting content.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	kind := domain.DetectKind(raw.URI, nil)

	now := time.Now()
	doc := domain.Document{
		ID:         uuid.New().String(),
		DossierID:  raw.DossierID,
		URI:        raw.URI,
		Title:      extractTitle(raw.URI),
		Kind:       kind,
		SizeBytes:  raw.SizeBytes,
		ModifiedAt: raw.ModifiedAt,
		Metadata:   copyMetadata(raw.Metadata),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType

	return &driven.NormaliseResult{Document: doc}, nil
}

// extractTitle extracts a human-readable title from a file path.
func extractTitle(uri string) string {
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
