package driving

import (
	"context"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// DossierService manages registered drop directories.
type DossierService interface {
	// Register creates a dossier for a directory, creating the directory
	// if it does not exist yet.
	Register(ctx context.Context, name, path string) (*domain.Dossier, error)

	// Get retrieves a dossier by ID.
	Get(ctx context.Context, id string) (*domain.Dossier, error)

	// List returns all registered dossiers.
	List(ctx context.Context) ([]domain.Dossier, error)

	// Remove unregisters a dossier and deletes its catalogued documents.
	// Files on disk are never touched.
	Remove(ctx context.Context, id string) error

	// Inventory walks a dossier directory and returns what is on disk
	// right now, without consulting or updating the catalogue.
	Inventory(ctx context.Context, id string) ([]InventoryEntry, error)
}

// InventoryEntry describes one file found on disk during an inventory walk.
type InventoryEntry struct {
	// Name is the base filename.
	Name string

	// RelPath is the path relative to the dossier directory.
	RelPath string

	// SizeBytes is the current file size.
	SizeBytes int64

	// Kind is the detected file format.
	Kind domain.FileKind
}
