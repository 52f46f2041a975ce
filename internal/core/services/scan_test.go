package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driven/storage/memory"
	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// --- Mock implementations for scan testing ---

// scanMockScanner implements driven.Scanner for testing.
type scanMockScanner struct {
	dossierID      string
	fullScanDocs   []domain.RawDocument
	fullScanErr    error
	incScanDocs    []domain.RawDocumentChange
	incScanErr     error
	watchChanges   []domain.RawDocumentChange
	watchErr       error
	validateErr    error
	completeWith   string
	gotCursor      string
	incrementalRan bool
	closed         bool
}

func (m *scanMockScanner) DossierID() string { return m.dossierID }

func (m *scanMockScanner) Validate(_ context.Context) error {
	return m.validateErr
}

func (m *scanMockScanner) FullScan(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 2)

	go func() {
		defer close(docs)
		defer close(errs)

		if m.fullScanErr != nil {
			errs <- m.fullScanErr
			return
		}

		for _, doc := range m.fullScanDocs {
			select {
			case <-ctx.Done():
				return
			case docs <- doc:
			}
		}
		if m.completeWith != "" {
			errs <- &driven.ScanComplete{NewCursor: m.completeWith}
		}
	}()

	return docs, errs
}

func (m *scanMockScanner) IncrementalScan(ctx context.Context, state domain.ScanState) (<-chan domain.RawDocumentChange, <-chan error) {
	m.incrementalRan = true
	m.gotCursor = state.Cursor

	changes := make(chan domain.RawDocumentChange)
	errs := make(chan error, 2)

	go func() {
		defer close(changes)
		defer close(errs)

		if m.incScanErr != nil {
			errs <- m.incScanErr
			return
		}

		for _, change := range m.incScanDocs {
			select {
			case <-ctx.Done():
				return
			case changes <- change:
			}
		}
		if m.completeWith != "" {
			errs <- &driven.ScanComplete{NewCursor: m.completeWith}
		}
	}()

	return changes, errs
}

func (m *scanMockScanner) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	changes := make(chan domain.RawDocumentChange)
	go func() {
		defer close(changes)
		for _, change := range m.watchChanges {
			changes <- change
		}
	}()
	return changes, nil
}

func (m *scanMockScanner) Close() error {
	m.closed = true
	return nil
}

// scanMockFactory implements driven.ScannerFactory.
type scanMockFactory struct {
	scanners  map[string]*scanMockScanner
	createErr error
}

func newScanMockFactory() *scanMockFactory {
	return &scanMockFactory{scanners: make(map[string]*scanMockScanner)}
}

func (f *scanMockFactory) Create(_ context.Context, dossier domain.Dossier) (driven.Scanner, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if scanner, ok := f.scanners[dossier.ID]; ok {
		return scanner, nil
	}
	return nil, errors.New("no scanner configured for dossier")
}

// scanMockRegistry implements driven.NormaliserRegistry.
type scanMockRegistry struct {
	normaliseErr error
}

func (r *scanMockRegistry) Register(_ driven.Normaliser) {}

func (r *scanMockRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if r.normaliseErr != nil {
		return nil, r.normaliseErr
	}

	// Default: mint a fresh ID per call so ID stability across
	// re-scans is observable
	doc := domain.Document{
		ID:        "doc-" + raw.URI + "-" + time.Now().Format("150405.000000000"),
		DossierID: raw.DossierID,
		URI:       raw.URI,
		Title:     raw.URI,
		Kind:      domain.KindText,
		Content:   string(raw.Content),
		SizeBytes: raw.SizeBytes,
	}
	return &driven.NormaliseResult{Document: doc}, nil
}

func setupScanTest(t *testing.T) (*ScanOrchestrator, *memory.DossierStore, *memory.ScanStateStore, *memory.DocumentStore, *memory.ExclusionStore, *scanMockFactory) {
	t.Helper()

	dossierStore := memory.NewDossierStore()
	scanStore := memory.NewScanStateStore()
	docStore := memory.NewDocumentStore()
	exclusionStore := memory.NewExclusionStore()
	factory := newScanMockFactory()

	orchestrator := NewScanOrchestrator(
		dossierStore, scanStore, docStore, exclusionStore,
		factory, &scanMockRegistry{},
	)

	return orchestrator, dossierStore, scanStore, docStore, exclusionStore, factory
}

// --- Tests ---

func TestNewScanOrchestrator(t *testing.T) {
	orchestrator, _, _, _, _, _ := setupScanTest(t)

	require.NotNil(t, orchestrator)
	assert.NotNil(t, orchestrator.dossierStore)
	assert.NotNil(t, orchestrator.activeScans)
}

func TestScanOrchestrator_Scan_DossierNotFound(t *testing.T) {
	orchestrator, _, _, _, _, _ := setupScanTest(t)

	err := orchestrator.Scan(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "get dossier")
}

func TestScanOrchestrator_Scan_FactoryMissing(t *testing.T) {
	dossierStore := memory.NewDossierStore()
	ctx := context.Background()
	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))

	orchestrator := NewScanOrchestrator(
		dossierStore, memory.NewScanStateStore(), memory.NewDocumentStore(),
		memory.NewExclusionStore(), nil, &scanMockRegistry{},
	)

	err := orchestrator.Scan(ctx, "dos-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create scanner")
}

func TestScanOrchestrator_Scan_FullScan(t *testing.T) {
	orchestrator, dossierStore, scanStore, docStore, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	scanner := &scanMockScanner{
		dossierID: "dos-1",
		fullScanDocs: []domain.RawDocument{
			{DossierID: "dos-1", URI: "/tmp/acme/passport.pdf", MIMEType: "application/pdf", SizeBytes: 100},
			{DossierID: "dos-1", URI: "/tmp/acme/notes.txt", MIMEType: "text/plain", Content: []byte("kyc notes"), SizeBytes: 9},
		},
		completeWith: "cursor-1",
	}
	factory.scanners["dos-1"] = scanner

	err := orchestrator.Scan(ctx, "dos-1")
	require.NoError(t, err)

	docs, err := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	state, err := scanStore.Get(ctx, "dos-1")
	require.NoError(t, err)
	assert.Equal(t, "cursor-1", state.Cursor)
	assert.False(t, state.LastScan.IsZero())

	assert.True(t, scanner.closed)
}

func TestScanOrchestrator_Scan_Incremental(t *testing.T) {
	orchestrator, dossierStore, scanStore, docStore, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	require.NoError(t, scanStore.Save(ctx, domain.ScanState{
		DossierID: "dos-1",
		Cursor:    "cursor-old",
		LastScan:  time.Now().Add(-time.Hour),
	}))

	// Pre-existing catalogued document that the incremental scan deletes
	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{
		ID:        "doc-gone",
		DossierID: "dos-1",
		URI:       "/tmp/acme/stale.txt",
	}))

	scanner := &scanMockScanner{
		dossierID: "dos-1",
		incScanDocs: []domain.RawDocumentChange{
			{Type: domain.ChangeUpdated, Document: domain.RawDocument{
				DossierID: "dos-1", URI: "/tmp/acme/utility-bill.txt",
				MIMEType: "text/plain", Content: []byte("bill"), SizeBytes: 4,
			}},
			{Type: domain.ChangeDeleted, Document: domain.RawDocument{
				DossierID: "dos-1", URI: "/tmp/acme/stale.txt",
			}},
		},
		completeWith: "cursor-new",
	}
	factory.scanners["dos-1"] = scanner

	err := orchestrator.Scan(ctx, "dos-1")
	require.NoError(t, err)

	assert.True(t, scanner.incrementalRan)
	assert.Equal(t, "cursor-old", scanner.gotCursor)

	docs, err := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "/tmp/acme/utility-bill.txt", docs[0].URI)

	state, err := scanStore.Get(ctx, "dos-1")
	require.NoError(t, err)
	assert.Equal(t, "cursor-new", state.Cursor)
}

func TestScanOrchestrator_Scan_PreservesDocumentID(t *testing.T) {
	orchestrator, dossierStore, scanStore, docStore, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	scanner := &scanMockScanner{
		dossierID: "dos-1",
		fullScanDocs: []domain.RawDocument{
			{DossierID: "dos-1", URI: "/tmp/acme/id-card.png", MIMEType: "image/png", SizeBytes: 50},
		},
	}
	factory.scanners["dos-1"] = scanner

	require.NoError(t, orchestrator.Scan(ctx, "dos-1"))
	docs, err := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	firstID := docs[0].ID
	firstCreated := docs[0].CreatedAt

	// Clear the cursor so the second run is another full scan
	require.NoError(t, scanStore.Delete(ctx, "dos-1"))

	require.NoError(t, orchestrator.Scan(ctx, "dos-1"))
	docs, err = docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, firstID, docs[0].ID)
	assert.Equal(t, firstCreated, docs[0].CreatedAt)
	assert.True(t, docs[0].UpdatedAt.After(firstCreated) || docs[0].UpdatedAt.Equal(firstCreated))
}

func TestScanOrchestrator_Scan_SkipsExcluded(t *testing.T) {
	orchestrator, dossierStore, _, docStore, exclusionStore, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	require.NoError(t, exclusionStore.Add(ctx, &domain.Exclusion{
		ID:        "excl-1",
		DossierID: "dos-1",
		URI:       "/tmp/acme/duplicate.pdf",
		Reason:    "duplicate upload",
	}))

	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID: "dos-1",
		fullScanDocs: []domain.RawDocument{
			{DossierID: "dos-1", URI: "/tmp/acme/passport.pdf", SizeBytes: 10},
			{DossierID: "dos-1", URI: "/tmp/acme/duplicate.pdf", SizeBytes: 10},
		},
	}

	require.NoError(t, orchestrator.Scan(ctx, "dos-1"))

	docs, err := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "/tmp/acme/passport.pdf", docs[0].URI)
}

func TestScanOrchestrator_Scan_ValidateFails(t *testing.T) {
	orchestrator, dossierStore, _, _, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/gone"}))
	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID:   "dos-1",
		validateErr: domain.ErrDossierPathInvalid,
	}

	err := orchestrator.Scan(ctx, "dos-1")

	assert.ErrorIs(t, err, domain.ErrDossierPathInvalid)
}

func TestScanOrchestrator_Scan_ScannerError(t *testing.T) {
	orchestrator, dossierStore, scanStore, _, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID:   "dos-1",
		fullScanErr: errors.New("disk exploded"),
	}

	err := orchestrator.Scan(ctx, "dos-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk exploded")

	// No state written for a failed scan
	_, err = scanStore.Get(ctx, "dos-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanOrchestrator_ScanAll(t *testing.T) {
	orchestrator, dossierStore, _, docStore, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-2", Name: "Globex", Path: "/tmp/globex"}))

	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID: "dos-1",
		fullScanDocs: []domain.RawDocument{
			{DossierID: "dos-1", URI: "/tmp/acme/a.txt", Content: []byte("a"), SizeBytes: 1},
		},
	}
	factory.scanners["dos-2"] = &scanMockScanner{
		dossierID:   "dos-2",
		fullScanErr: errors.New("unreadable"),
	}

	err := orchestrator.ScanAll(ctx)

	// One dossier fails, the other still completes
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dos-2")

	docs, listErr := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, listErr)
	assert.Len(t, docs, 1)
}

func TestScanOrchestrator_Watch(t *testing.T) {
	orchestrator, dossierStore, _, docStore, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))
	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{
		ID:        "doc-old",
		DossierID: "dos-1",
		URI:       "/tmp/acme/removed.txt",
	}))

	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID: "dos-1",
		watchChanges: []domain.RawDocumentChange{
			{Type: domain.ChangeCreated, Document: domain.RawDocument{
				DossierID: "dos-1", URI: "/tmp/acme/new.txt", Content: []byte("new"), SizeBytes: 3,
			}},
			{Type: domain.ChangeDeleted, Document: domain.RawDocument{
				DossierID: "dos-1", URI: "/tmp/acme/removed.txt",
			}},
		},
	}

	err := orchestrator.Watch(ctx, "dos-1")
	require.NoError(t, err)

	docs, err := docStore.ListDocuments(ctx, "dos-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "/tmp/acme/new.txt", docs[0].URI)
}

func TestScanOrchestrator_Status_ConcurrentWithScan(t *testing.T) {
	orchestrator, dossierStore, _, _, _, factory := setupScanTest(t)
	ctx := context.Background()

	require.NoError(t, dossierStore.Save(ctx, domain.Dossier{ID: "dos-1", Name: "Acme", Path: "/tmp/acme"}))

	docs := make([]domain.RawDocument, 200)
	for i := range docs {
		docs[i] = domain.RawDocument{
			DossierID: "dos-1",
			URI:       fmt.Sprintf("/tmp/acme/doc-%d.txt", i),
			Content:   []byte("x"),
			SizeBytes: 1,
		}
	}
	factory.scanners["dos-1"] = &scanMockScanner{
		dossierID:    "dos-1",
		fullScanDocs: docs,
		completeWith: "cursor-1",
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					status, err := orchestrator.Status(ctx, "dos-1")
					assert.NoError(t, err)
					assert.GreaterOrEqual(t, status.DocumentsProcessed, 0)
				}
			}
		}()
	}

	err := orchestrator.Scan(ctx, "dos-1")
	close(done)
	wg.Wait()

	require.NoError(t, err)
}

func TestScanOrchestrator_Status(t *testing.T) {
	orchestrator, _, _, _, _, _ := setupScanTest(t)

	status, err := orchestrator.Status(context.Background(), "dos-1")

	require.NoError(t, err)
	assert.Equal(t, "dos-1", status.DossierID)
	assert.False(t, status.Running)
}
