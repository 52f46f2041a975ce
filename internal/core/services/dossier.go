package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// Ensure DossierService implements the interface.
var _ driving.DossierService = (*DossierService)(nil)

// DossierService manages registered drop directories.
type DossierService struct {
	dossierStore driven.DossierStore
	scanStore    driven.ScanStateStore
	docStore     driven.DocumentStore
}

// NewDossierService creates a new dossier service.
func NewDossierService(
	dossierStore driven.DossierStore,
	scanStore driven.ScanStateStore,
	docStore driven.DocumentStore,
) *DossierService {
	return &DossierService{
		dossierStore: dossierStore,
		scanStore:    scanStore,
		docStore:     docStore,
	}
}

// Register creates a dossier for a directory, creating the directory if
// it does not exist yet. The path is stored absolute so later scans are
// independent of the working directory.
func (s *DossierService) Register(ctx context.Context, name, path string) (*domain.Dossier, error) {
	if s.dossierStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if name == "" || path == "" {
		return nil, fmt.Errorf("%w: name and path are required", domain.ErrInvalidInput)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDossierPathInvalid, err)
	}

	info, err := os.Stat(absPath)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(absPath, 0750); err != nil {
			return nil, fmt.Errorf("create dossier directory: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrDossierPathInvalid, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrDossierPathInvalid, absPath)
	}

	// Reject double registration of the same directory
	existing, err := s.dossierStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}
	for _, d := range existing {
		if d.Path == absPath {
			return nil, fmt.Errorf("%w: %s already registered as %q",
				domain.ErrAlreadyExists, absPath, d.Name)
		}
	}

	dossier := domain.Dossier{
		ID:   uuid.New().String(),
		Name: name,
		Path: absPath,
	}
	if err := s.dossierStore.Save(ctx, dossier); err != nil {
		return nil, fmt.Errorf("save dossier: %w", err)
	}

	return &dossier, nil
}

// Get retrieves a dossier by ID.
func (s *DossierService) Get(ctx context.Context, id string) (*domain.Dossier, error) {
	if s.dossierStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.dossierStore.Get(ctx, id)
}

// List returns all registered dossiers.
func (s *DossierService) List(ctx context.Context) ([]domain.Dossier, error) {
	if s.dossierStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.dossierStore.List(ctx)
}

// Remove unregisters a dossier and deletes its catalogued documents.
// Files on disk are never touched.
func (s *DossierService) Remove(ctx context.Context, id string) error {
	if s.dossierStore == nil {
		return domain.ErrNotImplemented
	}

	// Verify it exists before cleanup
	if _, err := s.dossierStore.Get(ctx, id); err != nil {
		return err
	}

	if s.docStore != nil {
		docs, err := s.docStore.ListDocuments(ctx, id)
		if err == nil {
			for i := range docs {
				//nolint:errcheck // Intentionally ignore errors to continue cleanup
				_ = s.docStore.DeleteDocument(ctx, docs[i].ID)
			}
		}
	}
	if s.scanStore != nil {
		//nolint:errcheck // Intentionally ignore errors to continue cleanup
		_ = s.scanStore.Delete(ctx, id)
	}

	return s.dossierStore.Delete(ctx, id)
}

// Inventory walks a dossier directory and returns what is on disk right
// now, without consulting or updating the catalogue. Dotfiles and
// dot-directories are skipped.
func (s *DossierService) Inventory(ctx context.Context, id string) ([]driving.InventoryEntry, error) {
	dossier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var entries []driving.InventoryEntry
	err = filepath.WalkDir(dossier.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != dossier.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(dossier.Path, path)
		if err != nil {
			rel = d.Name()
		}

		entries = append(entries, driving.InventoryEntry{
			Name:      d.Name(),
			RelPath:   rel,
			SizeBytes: info.Size(),
			Kind:      domain.DetectKind(path, nil),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dossier directory: %w", err)
	}

	return entries, nil
}
