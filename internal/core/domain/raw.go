package domain

import "time"

// RawDocument represents a file picked up by a scanner.
// It is the scanner's output before normalisation.
type RawDocument struct {
	// DossierID links to the Dossier that produced this document.
	DossierID string

	// URI is the absolute path of the file.
	URI string

	// MIMEType is the detected content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes. Nil when the file is outside the size
	// budget or not a text format; such files are catalogued metadata-only.
	Content []byte

	// SizeBytes is the file size from stat, valid even when Content is nil.
	SizeBytes int64

	// ModifiedAt is the file modification time.
	ModifiedAt time.Time

	// Metadata contains scanner-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// RawDocumentChange represents a change event from a scanner.
// Used for incremental scans and watch mode.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document.
	Document RawDocument
}
