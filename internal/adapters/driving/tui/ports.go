// Package tui provides the interactive chat interface for a dossier.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Agent answers questions about the dossier's documents.
	Agent driving.AgentService

	// Document provides catalogued document access for /list.
	Document driving.DocumentService

	// Scan provides scan status for /status.
	Scan driving.ScanOrchestrator

	// Dossier is the dossier this chat session is bound to.
	Dossier domain.Dossier
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Agent == nil {
		return ErrMissingAgentService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Dossier.ID == "" {
		return ErrMissingDossier
	}
	return nil
}
