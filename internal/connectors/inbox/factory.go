package inbox

import (
	"context"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

var _ driven.ScannerFactory = (*Factory)(nil)

// Factory builds inbox scanners sharing one content budget.
type Factory struct {
	maxContentBytes int64
}

// NewFactory creates a scanner factory. A non-positive budget falls
// back to the default.
func NewFactory(maxContentBytes int64) *Factory {
	if maxContentBytes <= 0 {
		maxContentBytes = domain.DefaultMaxFileBytes
	}
	return &Factory{maxContentBytes: maxContentBytes}
}

// Create returns a scanner for the dossier's drop directory.
func (f *Factory) Create(_ context.Context, dossier domain.Dossier) (driven.Scanner, error) {
	return New(dossier.ID, dossier.Path, f.maxContentBytes), nil
}
