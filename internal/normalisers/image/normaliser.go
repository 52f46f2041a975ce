// Package image normalises JPEG and PNG documents. Images carry no text;
// they are catalogued metadata-only, with pixel dimensions recorded when
// the scanner delivered the bytes.
package image

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles JPEG and PNG documents.
type Normaliser struct{}

// New creates a new image normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"image/jpeg", "image/png"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a raw image to a catalogued document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	kind := domain.KindJPEG
	if raw.MIMEType == "image/png" {
		kind = domain.KindPNG
	}

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

	// Dimensions are best-effort: DecodeConfig reads only the header.
	if len(raw.Content) > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw.Content))
		if err != nil {
			logger.Debug("decode image config for %s: %v", raw.URI, err)
		} else {
			doc.Metadata["width"] = cfg.Width
			doc.Metadata["height"] = cfg.Height
		}
	}

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
