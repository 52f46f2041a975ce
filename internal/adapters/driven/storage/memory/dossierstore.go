package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure DossierStore implements the interface.
var _ driven.DossierStore = (*DossierStore)(nil)

// DossierStore is an in-memory implementation of driven.DossierStore.
type DossierStore struct {
	mu       sync.RWMutex
	dossiers map[string]domain.Dossier
}

// NewDossierStore creates a new in-memory dossier store.
func NewDossierStore() *DossierStore {
	return &DossierStore{
		dossiers: make(map[string]domain.Dossier),
	}
}

// Save stores or updates a dossier.
func (s *DossierStore) Save(_ context.Context, dossier domain.Dossier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if dossier.CreatedAt.IsZero() {
		dossier.CreatedAt = now
	}
	dossier.UpdatedAt = now
	s.dossiers[dossier.ID] = dossier
	return nil
}

// Get retrieves a dossier by ID.
func (s *DossierStore) Get(_ context.Context, id string) (*domain.Dossier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dossier, ok := s.dossiers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dossier, nil
}

// Delete removes a dossier.
func (s *DossierStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dossiers, id)
	return nil
}

// List returns all registered dossiers sorted by name.
func (s *DossierStore) List(_ context.Context) ([]domain.Dossier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dossiers := make([]domain.Dossier, 0, len(s.dossiers))
	for _, dossier := range s.dossiers {
		dossiers = append(dossiers, dossier)
	}
	sort.Slice(dossiers, func(i, j int) bool {
		return dossiers[i].Name < dossiers[j].Name
	})
	return dossiers, nil
}
