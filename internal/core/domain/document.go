package domain

import "time"

// Document represents a catalogued file from a dossier directory.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// DossierID links to the Dossier that produced this document.
	DossierID string

	// URI is the original location on disk (absolute path).
	URI string

	// Title is the human-readable title derived from the filename.
	Title string

	// Kind is the detected file format.
	Kind FileKind

	// Content is the extracted text after normalisation.
	// Empty for binary documents, which are catalogued metadata-only.
	Content string

	// SizeBytes is the file size at catalogue time.
	SizeBytes int64

	// ModifiedAt is the file modification time at catalogue time.
	ModifiedAt time.Time

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first catalogued.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// HasContent reports whether text was extracted for this document.
func (d *Document) HasContent() bool {
	return d.Content != ""
}
