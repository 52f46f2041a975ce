package memory

import (
	"context"
	"sync"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure ExclusionStore implements the interface.
var _ driven.ExclusionStore = (*ExclusionStore)(nil)

// ExclusionStore is an in-memory implementation of driven.ExclusionStore.
type ExclusionStore struct {
	mu         sync.RWMutex
	exclusions map[string]domain.Exclusion
}

// NewExclusionStore creates a new in-memory exclusion store.
func NewExclusionStore() *ExclusionStore {
	return &ExclusionStore{
		exclusions: make(map[string]domain.Exclusion),
	}
}

// Add creates a new exclusion.
func (s *ExclusionStore) Add(_ context.Context, exclusion *domain.Exclusion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.exclusions[exclusion.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.exclusions[exclusion.ID] = *exclusion
	return nil
}

// Remove deletes an exclusion by ID.
func (s *ExclusionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exclusions, id)
	return nil
}

// GetByDossierID returns all exclusions for a dossier.
func (s *ExclusionStore) GetByDossierID(_ context.Context, dossierID string) ([]domain.Exclusion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Exclusion
	for _, e := range s.exclusions {
		if e.DossierID == dossierID {
			result = append(result, e)
		}
	}
	return result, nil
}

// IsExcluded checks if a URI is excluded for a dossier.
func (s *ExclusionStore) IsExcluded(_ context.Context, dossierID, uri string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exclusions {
		if e.DossierID == dossierID && e.URI == uri {
			return true, nil
		}
	}
	return false, nil
}

// List returns all exclusions.
func (s *ExclusionStore) List(_ context.Context) ([]domain.Exclusion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Exclusion, 0, len(s.exclusions))
	for _, e := range s.exclusions {
		result = append(result, e)
	}
	return result, nil
}
