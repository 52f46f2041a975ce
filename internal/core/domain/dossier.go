package domain

import "time"

// Dossier represents a registered drop directory.
// Each dossier holds the documents for one customer or case; an external
// agent treats the directory as its working directory.
type Dossier struct {
	// ID is the unique identifier for the dossier.
	ID string

	// Name is the human-readable name (customer or case reference).
	Name string

	// Path is the absolute directory path on disk.
	Path string

	// CreatedAt is when the dossier was registered.
	CreatedAt time.Time

	// UpdatedAt is when the dossier was last updated.
	UpdatedAt time.Time
}

// ScanState tracks catalogue progress for a dossier.
type ScanState struct {
	// DossierID links to the Dossier being scanned.
	DossierID string

	// Cursor is an opaque token for incremental scans.
	// The inbox scanner stores the newest modification time seen.
	Cursor string

	// LastScan is when the last successful scan completed.
	LastScan time.Time
}

// Exclusion represents a file that has been excluded from cataloguing.
// Excluded URIs are skipped during future scans.
type Exclusion struct {
	// ID is the unique identifier for the exclusion.
	ID string

	// DossierID links to the Dossier this exclusion applies to.
	DossierID string

	// DocumentID is the ID of the excluded document, if it was catalogued.
	DocumentID string

	// URI is the file path for matching on re-scan.
	URI string

	// Reason is an optional explanation for the exclusion.
	Reason string

	// ExcludedAt is when the file was excluded.
	ExcludedAt time.Time
}
