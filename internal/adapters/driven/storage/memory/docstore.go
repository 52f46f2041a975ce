// Package memory provides in-memory implementations of the driven store
// ports, used by service tests and as a lightweight fallback.
package memory

import (
	"context"
	"sync"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByURI retrieves a document by its path within a dossier.
func (s *DocumentStore) GetDocumentByURI(_ context.Context, dossierID, uri string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.DossierID == dossierID && doc.URI == uri {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}

// ListDocuments returns documents for a dossier.
func (s *DocumentStore) ListDocuments(_ context.Context, dossierID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.Document
	for _, doc := range s.documents {
		if doc.DossierID == dossierID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// CountDocuments returns the document count for a dossier.
func (s *DocumentStore) CountDocuments(_ context.Context, dossierID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, doc := range s.documents {
		if doc.DossierID == dossierID {
			count++
		}
	}
	return count, nil
}
