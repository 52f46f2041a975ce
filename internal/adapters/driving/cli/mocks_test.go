package cli

import (
	"context"
	"time"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// mockDossierService is a mock implementation of driving.DossierService.
type mockDossierService struct {
	dossiers  []domain.Dossier
	dossier   *domain.Dossier
	entries   []driving.InventoryEntry
	removedID string
	err       error
}

func (m *mockDossierService) Register(_ context.Context, name, path string) (*domain.Dossier, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.dossier != nil {
		return m.dossier, nil
	}
	return &domain.Dossier{ID: "dos-new", Name: name, Path: path}, nil
}

func (m *mockDossierService) Get(_ context.Context, _ string) (*domain.Dossier, error) {
	return m.dossier, m.err
}

func (m *mockDossierService) List(_ context.Context) ([]domain.Dossier, error) {
	return m.dossiers, m.err
}

func (m *mockDossierService) Remove(_ context.Context, id string) error {
	m.removedID = id
	return m.err
}

func (m *mockDossierService) Inventory(_ context.Context, _ string) ([]driving.InventoryEntry, error) {
	return m.entries, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents  []domain.Document
	document   *domain.Document
	content    string
	preview    string
	details    *driving.DocumentDetails
	excludedID string
	reason     string
	openedID   string
	err        error
}

func (m *mockDocumentService) ListByDossier(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Preview(_ context.Context, _ string, _ int) (string, error) {
	return m.preview, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Exclude(_ context.Context, id, reason string) error {
	m.excludedID = id
	m.reason = reason
	return m.err
}

func (m *mockDocumentService) Open(_ context.Context, id string) error {
	m.openedID = id
	return m.err
}

// mockAgentService is a mock implementation of driving.AgentService.
type mockAgentService struct {
	summary       string
	summariseErr  error
	summarisedIDs []string
}

func (m *mockAgentService) Ask(_ context.Context, _ string) (*driving.Answer, error) {
	return nil, domain.ErrLLMUnavailable
}

func (m *mockAgentService) Summarise(_ context.Context, documentID string) (string, error) {
	if m.summariseErr != nil {
		return "", m.summariseErr
	}
	m.summarisedIDs = append(m.summarisedIDs, documentID)
	return m.summary, nil
}

func (m *mockAgentService) Reset()                       {}
func (m *mockAgentService) ModelName() string            { return "mock-model" }
func (m *mockAgentService) Ping(_ context.Context) error { return nil }

// mockScanOrchestrator is a mock implementation of driving.ScanOrchestrator.
type mockScanOrchestrator struct {
	status     *driving.ScanStatus
	scannedID  string
	scannedAll bool
	watchedID  string
	scanErr    error
	scanAllErr error
	watchErr   error
	statusErr  error
}

func (m *mockScanOrchestrator) Scan(_ context.Context, dossierID string) error {
	m.scannedID = dossierID
	return m.scanErr
}

func (m *mockScanOrchestrator) ScanAll(_ context.Context) error {
	m.scannedAll = true
	return m.scanAllErr
}

func (m *mockScanOrchestrator) Watch(_ context.Context, dossierID string) error {
	m.watchedID = dossierID
	return m.watchErr
}

func (m *mockScanOrchestrator) Status(_ context.Context, dossierID string) (*driving.ScanStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	if m.status != nil {
		return m.status, nil
	}
	return &driving.ScanStatus{DossierID: dossierID}, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AgentSettings
	saved       *domain.AgentSettings
	getErr      error
	saveErr     error
	validateErr error
}

func (m *mockSettingsService) Get() (domain.AgentSettings, error) {
	if m.getErr != nil {
		return domain.AgentSettings{}, m.getErr
	}
	return m.settings.WithDefaults(), nil
}

func (m *mockSettingsService) Save(settings domain.AgentSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &settings
	return nil
}

func (m *mockSettingsService) SetProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Provider = provider
	m.settings.Model = model
	m.settings.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetGuards(maxFileBytes int64, previewLines, maxContextDocs int) error {
	m.settings.MaxFileBytes = maxFileBytes
	m.settings.PreviewLines = previewLines
	m.settings.MaxContextDocs = maxContextDocs
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AgentSettings {
	return domain.AgentSettings{}.WithDefaults()
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

// testFixtures holds the mocks installed by setupTestServices.
type testFixtures struct {
	dossiers  *mockDossierService
	documents *mockDocumentService
	scans     *mockScanOrchestrator
	settings  *mockSettingsService
}

// setupTestServices swaps in populated mocks and returns them with a
// cleanup that restores whatever was installed before.
func setupTestServices() (*testFixtures, func()) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	fixtures := &testFixtures{
		dossiers: &mockDossierService{
			dossier: &domain.Dossier{ID: "dos-1", Name: "Acme Corp", Path: "/in/acme"},
			dossiers: []domain.Dossier{
				{ID: "dos-1", Name: "Acme Corp", Path: "/in/acme"},
			},
			entries: []driving.InventoryEntry{
				{Name: "passport.pdf", RelPath: "passport.pdf", SizeBytes: 2048, Kind: domain.KindPDF},
				{Name: "jan.csv", RelPath: "statements/jan.csv", SizeBytes: 512, Kind: domain.KindText},
			},
		},
		documents: &mockDocumentService{
			documents: []domain.Document{
				{ID: "doc-1", Title: "passport.pdf", URI: "/in/acme/passport.pdf", Kind: domain.KindPDF, SizeBytes: 2048},
				{ID: "doc-2", Title: "notes.txt", URI: "/in/acme/notes.txt", Kind: domain.KindText, SizeBytes: 64, Content: "hello"},
			},
			content: "extracted text",
			preview: "first line",
			details: &driving.DocumentDetails{
				ID:          "doc-1",
				DossierID:   "dos-1",
				DossierName: "Acme Corp",
				Title:       "passport.pdf",
				URI:         "/in/acme/passport.pdf",
				Kind:        domain.KindPDF,
				SizeBytes:   2048,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
		scans: &mockScanOrchestrator{},
		settings: &mockSettingsService{
			settings: domain.AgentSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
		},
	}

	prevDossier := dossierService
	prevDocument := documentService
	prevScan := scanOrchestrator
	prevSettings := settingsService

	dossierService = fixtures.dossiers
	documentService = fixtures.documents
	scanOrchestrator = fixtures.scans
	settingsService = fixtures.settings

	cleanup := func() {
		dossierService = prevDossier
		documentService = prevDocument
		scanOrchestrator = prevScan
		settingsService = prevSettings
		rootCmd.SetArgs(nil)
	}

	return fixtures, cleanup
}
