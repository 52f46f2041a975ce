package normalisers

import (
	"context"
	"sort"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// wildcardMIME is the registration key for fallback normalisers.
const wildcardMIME = "*"

// Registry dispatches raw files to normalisers by MIME type.
// When several normalisers support a type, the highest priority wins.
type Registry struct {
	byMIME map[string][]driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Normaliser),
	}
}

// Register adds a normaliser for each of its supported MIME types.
func (r *Registry) Register(n driven.Normaliser) {
	for _, mime := range n.SupportedMIMETypes() {
		r.byMIME[mime] = append(r.byMIME[mime], n)
		sort.SliceStable(r.byMIME[mime], func(i, j int) bool {
			return r.byMIME[mime][i].Priority() > r.byMIME[mime][j].Priority()
		})
	}
}

// Normalise routes the raw file to the best matching normaliser.
// Files with no format-specific normaliser fall back to the wildcard
// entry registered under "*", if any.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	if candidates, ok := r.byMIME[raw.MIMEType]; ok && len(candidates) > 0 {
		return candidates[0].Normalise(ctx, raw)
	}

	if fallbacks, ok := r.byMIME[wildcardMIME]; ok && len(fallbacks) > 0 {
		return fallbacks[0].Normalise(ctx, raw)
	}

	return nil, domain.ErrUnsupportedType
}
