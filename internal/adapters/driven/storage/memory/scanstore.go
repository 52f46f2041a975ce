package memory

import (
	"context"
	"sync"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure ScanStateStore implements the interface.
var _ driven.ScanStateStore = (*ScanStateStore)(nil)

// ScanStateStore is an in-memory implementation of driven.ScanStateStore.
type ScanStateStore struct {
	mu     sync.RWMutex
	states map[string]domain.ScanState
}

// NewScanStateStore creates a new in-memory scan state store.
func NewScanStateStore() *ScanStateStore {
	return &ScanStateStore{
		states: make(map[string]domain.ScanState),
	}
}

// Save stores or updates scan state.
func (s *ScanStateStore) Save(_ context.Context, state domain.ScanState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.DossierID] = state
	return nil
}

// Get retrieves scan state for a dossier.
func (s *ScanStateStore) Get(_ context.Context, dossierID string) (*domain.ScanState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[dossierID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// Delete removes scan state for a dossier.
func (s *ScanStateStore) Delete(_ context.Context, dossierID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, dossierID)
	return nil
}
