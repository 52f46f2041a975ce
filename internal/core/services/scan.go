package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// Ensure ScanOrchestrator implements the interface.
var _ driving.ScanOrchestrator = (*ScanOrchestrator)(nil)

// ScanOrchestrator coordinates cataloguing of dossier directories.
type ScanOrchestrator struct {
	dossierStore   driven.DossierStore
	scanStore      driven.ScanStateStore
	docStore       driven.DocumentStore
	exclusionStore driven.ExclusionStore
	factory        driven.ScannerFactory
	registry       driven.NormaliserRegistry

	// Status tracking
	mu          sync.RWMutex
	activeScans map[string]*driving.ScanStatus
}

// NewScanOrchestrator creates a new scan orchestrator.
func NewScanOrchestrator(
	dossierStore driven.DossierStore,
	scanStore driven.ScanStateStore,
	docStore driven.DocumentStore,
	exclusionStore driven.ExclusionStore,
	factory driven.ScannerFactory,
	registry driven.NormaliserRegistry,
) *ScanOrchestrator {
	return &ScanOrchestrator{
		dossierStore:   dossierStore,
		scanStore:      scanStore,
		docStore:       docStore,
		exclusionStore: exclusionStore,
		factory:        factory,
		registry:       registry,
		activeScans:    make(map[string]*driving.ScanStatus),
	}
}

// Scan catalogues a dossier directory.
// Runs incrementally when a cursor from a previous scan exists.
func (o *ScanOrchestrator) Scan(ctx context.Context, dossierID string) error {
	dossier, err := o.dossierStore.Get(ctx, dossierID)
	if err != nil {
		return fmt.Errorf("get dossier: %w", err)
	}

	if o.factory == nil {
		return fmt.Errorf("create scanner: scanner factory not configured")
	}
	scanner, err := o.factory.Create(ctx, *dossier)
	if err != nil {
		return fmt.Errorf("create scanner: %w", err)
	}
	defer scanner.Close()

	if err := scanner.Validate(ctx); err != nil {
		return fmt.Errorf("validate dossier directory: %w", err)
	}

	scanState, err := o.scanStore.Get(ctx, dossierID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get scan state: %w", err)
	}

	status := &driving.ScanStatus{
		DossierID: dossierID,
		Running:   true,
	}
	if !o.tryStartScan(dossierID, status) {
		return domain.ErrScanInProgress
	}
	defer o.clearStatus(dossierID)

	logger.Info("Starting scan for dossier %s", dossierID)

	var newCursor string

	if scanState != nil && scanState.Cursor != "" {
		changesCh, errsCh := scanner.IncrementalScan(ctx, *scanState)
		newCursor, err = o.processChanges(ctx, dossier, changesCh, errsCh, status)
	} else {
		docsCh, errsCh := scanner.FullScan(ctx)
		newCursor, err = o.processDocuments(ctx, dossier, docsCh, errsCh, status)
	}

	if err != nil {
		return err
	}

	newState := domain.ScanState{
		DossierID: dossierID,
		Cursor:    newCursor,
		LastScan:  time.Now(),
	}
	if err := o.scanStore.Save(ctx, newState); err != nil {
		return fmt.Errorf("save scan state: %w", err)
	}

	o.mu.Lock()
	status.Running = false
	processed, errCount := status.DocumentsProcessed, status.ErrorCount
	o.mu.Unlock()

	logger.Info("Scan complete: %d documents, %d errors", processed, errCount)
	return nil
}

// ScanAll catalogues every registered dossier.
func (o *ScanOrchestrator) ScanAll(ctx context.Context) error {
	dossiers, err := o.dossierStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list dossiers: %w", err)
	}

	var errs []error
	for _, dossier := range dossiers {
		if err := o.Scan(ctx, dossier.ID); err != nil {
			errs = append(errs, fmt.Errorf("scan %s: %w", dossier.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Watch applies live change events for a dossier until the context is
// cancelled.
func (o *ScanOrchestrator) Watch(ctx context.Context, dossierID string) error {
	dossier, err := o.dossierStore.Get(ctx, dossierID)
	if err != nil {
		return fmt.Errorf("get dossier: %w", err)
	}

	scanner, err := o.factory.Create(ctx, *dossier)
	if err != nil {
		return fmt.Errorf("create scanner: %w", err)
	}
	defer scanner.Close()

	changes, err := scanner.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watch: %w", err)
	}

	logger.Info("Watching dossier %s", dossierID)

	for change := range changes {
		switch change.Type {
		case domain.ChangeCreated, domain.ChangeUpdated:
			if err := o.processOneDocument(ctx, dossier, &change.Document); err != nil {
				logger.Debug("Failed to process %s: %v", change.Document.URI, err)
			}

		case domain.ChangeDeleted:
			if err := o.deleteDocumentByURI(ctx, dossierID, change.Document.URI); err != nil {
				logger.Debug("Failed to delete %s: %v", change.Document.URI, err)
			}
		}
	}

	return ctx.Err()
}

// Status returns scan status for a dossier.
func (o *ScanOrchestrator) Status(_ context.Context, dossierID string) (*driving.ScanStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeScans[dossierID]; ok {
		// Return a copy to avoid race conditions
		return &driving.ScanStatus{
			DossierID:          status.DossierID,
			Running:            status.Running,
			DocumentsProcessed: status.DocumentsProcessed,
			ErrorCount:         status.ErrorCount,
		}, nil
	}

	return &driving.ScanStatus{
		DossierID: dossierID,
		Running:   false,
	}, nil
}

// processDocuments handles a full scan.
// Returns the new cursor from ScanComplete if the scanner provides one.
func (o *ScanOrchestrator) processDocuments(
	ctx context.Context,
	dossier *domain.Dossier,
	docsCh <-chan domain.RawDocument,
	errsCh <-chan error,
	status *driving.ScanStatus,
) (string, error) {
	var newCursor string

	// Drain both channels fully so a ScanComplete cursor is never
	// missed when the document channel happens to close first.
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if sc, done := driven.IsScanComplete(err); done {
				newCursor = sc.NewCursor
				continue
			}
			if err != nil {
				return "", fmt.Errorf("scanner error: %w", err)
			}

		case rawDoc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}

			logger.Debug("Processing: %s", rawDoc.URI)
			if err := o.processOneDocument(ctx, dossier, &rawDoc); err != nil {
				o.recordError(status)
				logger.Debug("Failed to process %s: %v", rawDoc.URI, err)
				continue
			}
			o.recordProcessed(status)
		}
	}

	return newCursor, nil
}

// processChanges handles an incremental scan.
// Returns the new cursor from ScanComplete if the scanner provides one.
func (o *ScanOrchestrator) processChanges(
	ctx context.Context,
	dossier *domain.Dossier,
	changesCh <-chan domain.RawDocumentChange,
	errsCh <-chan error,
	status *driving.ScanStatus,
) (string, error) {
	var newCursor string

	for changesCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if sc, done := driven.IsScanComplete(err); done {
				newCursor = sc.NewCursor
				continue
			}
			if err != nil {
				return "", fmt.Errorf("scanner error: %w", err)
			}

		case change, ok := <-changesCh:
			if !ok {
				changesCh = nil
				continue
			}

			switch change.Type {
			case domain.ChangeCreated, domain.ChangeUpdated:
				logger.Debug("Processing: %s", change.Document.URI)
				if err := o.processOneDocument(ctx, dossier, &change.Document); err != nil {
					o.recordError(status)
					logger.Debug("Failed to process %s: %v", change.Document.URI, err)
					continue
				}

			case domain.ChangeDeleted:
				logger.Debug("Deleting: %s", change.Document.URI)
				if err := o.deleteDocumentByURI(ctx, dossier.ID, change.Document.URI); err != nil {
					o.recordError(status)
					logger.Debug("Failed to delete %s: %v", change.Document.URI, err)
					continue
				}
			}
			o.recordProcessed(status)
		}
	}

	return newCursor, nil
}

// processOneDocument runs the catalogue pipeline for one file:
// exclusion check, normalise, then upsert into the store keeping the
// existing document ID on re-scan.
func (o *ScanOrchestrator) processOneDocument(
	ctx context.Context,
	dossier *domain.Dossier,
	raw *domain.RawDocument,
) error {
	excluded, err := o.exclusionStore.IsExcluded(ctx, dossier.ID, raw.URI)
	if err != nil {
		return fmt.Errorf("check exclusion: %w", err)
	}
	if excluded {
		return nil // Skip silently
	}

	result, err := o.registry.Normalise(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}
	doc := result.Document

	now := time.Now().UTC()
	existing, err := o.docStore.GetDocumentByURI(ctx, dossier.ID, raw.URI)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
		doc.CreatedAt = now
	default:
		return fmt.Errorf("lookup document: %w", err)
	}
	doc.UpdatedAt = now

	if err := o.docStore.SaveDocument(ctx, &doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	return nil
}

// deleteDocumentByURI removes a catalogued document by its path.
func (o *ScanOrchestrator) deleteDocumentByURI(ctx context.Context, dossierID, uri string) error {
	doc, err := o.docStore.GetDocumentByURI(ctx, dossierID, uri)
	if errors.Is(err, domain.ErrNotFound) {
		// Already gone
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup document: %w", err)
	}

	if err := o.docStore.DeleteDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// recordProcessed bumps the processed counter under the status lock so
// concurrent Status readers see consistent values.
func (o *ScanOrchestrator) recordProcessed(status *driving.ScanStatus) {
	o.mu.Lock()
	status.DocumentsProcessed++
	o.mu.Unlock()
}

// recordError bumps the error counter under the status lock.
func (o *ScanOrchestrator) recordError(status *driving.ScanStatus) {
	o.mu.Lock()
	status.ErrorCount++
	o.mu.Unlock()
}

// tryStartScan registers status for a dossier unless one is running.
func (o *ScanOrchestrator) tryStartScan(dossierID string, status *driving.ScanStatus) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if existing, ok := o.activeScans[dossierID]; ok && existing.Running {
		return false
	}
	o.activeScans[dossierID] = status
	return true
}

// clearStatus removes the scan status for a dossier.
func (o *ScanOrchestrator) clearStatus(dossierID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeScans, dossierID)
}
