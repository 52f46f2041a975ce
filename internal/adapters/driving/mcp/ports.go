package mcp

import (
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dossier manages registered drop directories.
	Dossier driving.DossierService

	// Document manages catalogued documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Dossier == nil {
		return ErrMissingDossierService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
