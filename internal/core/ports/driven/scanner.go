package driven

import (
	"context"
	"errors"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// Scanner picks up files from a dossier's drop directory.
type Scanner interface {
	// DossierID returns the configured dossier ID.
	DossierID() string

	// Validate checks the dossier directory exists and is readable.
	// Returns nil if ready to scan, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// FullScan walks the entire directory.
	// Returns channels for documents and errors. Scanners that support
	// cursor return send ScanComplete on the error channel when done.
	FullScan(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// IncrementalScan picks up only files changed since the last scan,
	// using the cursor carried in state.
	IncrementalScan(ctx context.Context, state domain.ScanState) (<-chan domain.RawDocumentChange, <-chan error)

	// Watch listens for live changes to the directory.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ScannerFactory builds a Scanner for a dossier.
type ScannerFactory interface {
	// Create returns a scanner for the given dossier.
	Create(ctx context.Context, dossier domain.Dossier) (Scanner, error)
}

// ScanComplete is sent on the error channel when a scan finishes
// successfully. Carries the new cursor for incremental scans.
type ScanComplete struct {
	NewCursor string
}

// Error implements the error interface.
// This allows ScanComplete to be sent on the error channel.
func (ScanComplete) Error() string {
	return "scan complete"
}

// IsScanComplete checks if an error is actually a successful completion.
// Returns the ScanComplete and true if it is, nil and false otherwise.
func IsScanComplete(err error) (*ScanComplete, bool) {
	var sc *ScanComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
