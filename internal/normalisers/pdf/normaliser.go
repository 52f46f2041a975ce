// Package pdf normalises PDF documents. Text extraction shells out to
// pdftotext (poppler) when available; without it, PDFs are catalogued
// metadata-only.
package pdf

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// maxTitleLen is the longest content line considered usable as a title.
const maxTitleLen = 200

// CommandRunner executes an external command and returns its stdout.
// Injectable for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner CommandRunner

	// missingHint logs the install instructions at most once per
	// normaliser when pdftotext is not on PATH.
	missingHint sync.Once
}

// New creates a new PDF normaliser using pdftotext.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a raw PDF to a catalogued document.
// Extraction failures are not fatal: the document is catalogued
// metadata-only so the inventory stays complete.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := ""
	if n.runner != nil {
		out, err := n.runner.Run(ctx, "pdftotext", raw.URI, "-")
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				n.missingHint.Do(func() {
					logger.Warn("%s", InstallInstructions())
				})
			}
			logger.Debug("pdftotext failed for %s: %v", raw.URI, err)
		} else {
			content = strings.TrimSpace(string(out))
		}
	}

	now := time.Now()
	doc := domain.Document{
		ID:         uuid.New().String(),
		DossierID:  raw.DossierID,
		URI:        raw.URI,
		Title:      extractTitle(content, raw.URI),
		Kind:       domain.KindPDF,
		Content:    content,
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
	doc.Metadata["text_extracted"] = content != ""

	return &driven.NormaliseResult{Document: doc}, nil
}

// extractTitle uses the first short non-empty content line as the title,
// falling back to the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= maxTitleLen {
			return line
		}
	}

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

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return `PDF text extraction requires pdftotext (poppler):
  macOS:  brew install poppler
  Debian: apt install poppler-utils
  Fedora: dnf install poppler-utils`
}
