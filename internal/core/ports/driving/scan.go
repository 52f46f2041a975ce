package driving

import "context"

// ScanOrchestrator coordinates cataloguing of dossier directories.
type ScanOrchestrator interface {
	// Scan catalogues a dossier. Runs incrementally when a cursor from a
	// previous scan exists, otherwise walks the full directory.
	Scan(ctx context.Context, dossierID string) error

	// ScanAll catalogues every registered dossier.
	ScanAll(ctx context.Context) error

	// Watch applies live change events for a dossier until the context
	// is cancelled.
	Watch(ctx context.Context, dossierID string) error

	// Status returns scan status for a dossier.
	Status(ctx context.Context, dossierID string) (*ScanStatus, error)
}

// ScanStatus represents the current state of a scan operation.
type ScanStatus struct {
	// DossierID identifies the dossier.
	DossierID string

	// Running indicates if a scan is currently in progress.
	Running bool

	// DocumentsProcessed is the count of files processed.
	DocumentsProcessed int

	// ErrorCount is the number of errors encountered.
	ErrorCount int
}
