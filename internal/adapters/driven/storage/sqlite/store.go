package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all catalogue store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.kyc/data/catalogue.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kyc", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalogue.db")

	// WAL mode for better concurrency between scan and query paths.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DossierStore returns a DossierStore interface backed by this store.
func (s *Store) DossierStore() driven.DossierStore {
	return &dossierStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ScanStateStore returns a ScanStateStore interface backed by this store.
func (s *Store) ScanStateStore() driven.ScanStateStore {
	return &scanStateStore{store: s}
}

// ExclusionStore returns an ExclusionStore interface backed by this store.
func (s *Store) ExclusionStore() driven.ExclusionStore {
	return &exclusionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Dossier Store ====================

// dossierStore implements driven.DossierStore.
type dossierStore struct {
	store *Store
}

var _ driven.DossierStore = (*dossierStore)(nil)

// Save stores or updates a dossier.
func (s *dossierStore) Save(ctx context.Context, dossier domain.Dossier) error {
	now := time.Now().UTC()
	if dossier.CreatedAt.IsZero() {
		dossier.CreatedAt = now
	}
	dossier.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO dossiers (id, name, path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			updated_at = excluded.updated_at
	`, dossier.ID, dossier.Name, dossier.Path, dossier.CreatedAt, dossier.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving dossier: %w", err)
	}
	return nil
}

// Get retrieves a dossier by ID.
func (s *dossierStore) Get(ctx context.Context, id string) (*domain.Dossier, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, path, created_at, updated_at
		FROM dossiers WHERE id = ?
	`, id)

	var dossier domain.Dossier
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&dossier.ID, &dossier.Name, &dossier.Path, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning dossier: %w", err)
	}
	if createdAt.Valid {
		dossier.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		dossier.UpdatedAt = updatedAt.Time
	}

	return &dossier, nil
}

// Delete removes a dossier.
func (s *dossierStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM dossiers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting dossier: %w", err)
	}
	return nil
}

// List returns all registered dossiers.
func (s *dossierStore) List(ctx context.Context) ([]domain.Dossier, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, path, created_at, updated_at
		FROM dossiers ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying dossiers: %w", err)
	}
	defer rows.Close()

	var dossiers []domain.Dossier //nolint:prealloc // size unknown from query
	for rows.Next() {
		var dossier domain.Dossier
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&dossier.ID, &dossier.Name, &dossier.Path, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning dossier: %w", err)
		}
		if createdAt.Valid {
			dossier.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			dossier.UpdatedAt = updatedAt.Time
		}
		dossiers = append(dossiers, dossier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dossiers: %w", err)
	}

	return dossiers, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, dossier_id, uri, title, kind, content, size_bytes, modified_at, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dossier_id = excluded.dossier_id,
			uri = excluded.uri,
			title = excluded.title,
			kind = excluded.kind,
			content = excluded.content,
			size_bytes = excluded.size_bytes,
			modified_at = excluded.modified_at,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, doc.ID, doc.DossierID, doc.URI, doc.Title, string(doc.Kind), doc.Content,
		doc.SizeBytes, doc.ModifiedAt, string(metadataJSON), doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, dossier_id, uri, title, kind, content, size_bytes, modified_at, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocumentRow(row)
}

// GetDocumentByURI retrieves a document by its path within a dossier.
func (s *documentStore) GetDocumentByURI(ctx context.Context, dossierID, uri string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, dossier_id, uri, title, kind, content, size_bytes, modified_at, metadata, created_at, updated_at
		FROM documents WHERE dossier_id = ? AND uri = ?
	`, dossierID, uri)

	return scanDocumentRow(row)
}

// DeleteDocument removes a document.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns documents for a dossier.
func (s *documentStore) ListDocuments(ctx context.Context, dossierID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, dossier_id, uri, title, kind, content, size_bytes, modified_at, metadata, created_at, updated_at
		FROM documents WHERE dossier_id = ? ORDER BY uri
	`, dossierID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// CountDocuments returns the document count for a dossier.
func (s *documentStore) CountDocuments(ctx context.Context, dossierID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE dossier_id = ?", dossierID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// ==================== Scan State Store ====================

// scanStateStore implements driven.ScanStateStore.
type scanStateStore struct {
	store *Store
}

var _ driven.ScanStateStore = (*scanStateStore)(nil)

// Save stores or updates scan state.
func (s *scanStateStore) Save(ctx context.Context, state domain.ScanState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scan_states (dossier_id, cursor, last_scan)
		VALUES (?, ?, ?)
		ON CONFLICT(dossier_id) DO UPDATE SET
			cursor = excluded.cursor,
			last_scan = excluded.last_scan
	`, state.DossierID, state.Cursor, state.LastScan)

	if err != nil {
		return fmt.Errorf("saving scan state: %w", err)
	}
	return nil
}

// Get retrieves scan state for a dossier.
func (s *scanStateStore) Get(ctx context.Context, dossierID string) (*domain.ScanState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT dossier_id, cursor, last_scan
		FROM scan_states WHERE dossier_id = ?
	`, dossierID)

	var state domain.ScanState
	var lastScan sql.NullTime
	if err := row.Scan(&state.DossierID, &state.Cursor, &lastScan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning scan state: %w", err)
	}

	if lastScan.Valid {
		state.LastScan = lastScan.Time
	}

	return &state, nil
}

// Delete removes scan state for a dossier.
func (s *scanStateStore) Delete(ctx context.Context, dossierID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM scan_states WHERE dossier_id = ?", dossierID)
	if err != nil {
		return fmt.Errorf("deleting scan state: %w", err)
	}
	return nil
}

// ==================== Exclusion Store ====================

// exclusionStore implements driven.ExclusionStore.
type exclusionStore struct {
	store *Store
}

var _ driven.ExclusionStore = (*exclusionStore)(nil)

// Add creates a new exclusion.
func (s *exclusionStore) Add(ctx context.Context, exclusion *domain.Exclusion) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO exclusions (id, dossier_id, document_id, uri, reason, excluded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exclusion.ID, exclusion.DossierID, exclusion.DocumentID, exclusion.URI,
		exclusion.Reason, exclusion.ExcludedAt)

	if err != nil {
		return fmt.Errorf("adding exclusion: %w", err)
	}
	return nil
}

// Remove deletes an exclusion by ID.
func (s *exclusionStore) Remove(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM exclusions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing exclusion: %w", err)
	}
	return nil
}

// GetByDossierID returns all exclusions for a dossier.
func (s *exclusionStore) GetByDossierID(ctx context.Context, dossierID string) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, dossier_id, document_id, uri, reason, excluded_at
		FROM exclusions WHERE dossier_id = ?
	`, dossierID)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// IsExcluded checks if a URI is excluded for a dossier.
func (s *exclusionStore) IsExcluded(ctx context.Context, dossierID, uri string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM exclusions WHERE dossier_id = ? AND uri = ?
	`, dossierID, uri).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking exclusion: %w", err)
	}
	return count > 0, nil
}

// List returns all exclusions.
func (s *exclusionStore) List(ctx context.Context) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, dossier_id, document_id, uri, reason, excluded_at
		FROM exclusions
	`)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// ==================== Helper Functions ====================

// scanDocumentRow scans a single document row.
func scanDocumentRow(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var kind string
	var modifiedAt sql.NullTime
	var metadataJSON string

	if err := row.Scan(&doc.ID, &doc.DossierID, &doc.URI, &doc.Title, &kind, &doc.Content,
		&doc.SizeBytes, &modifiedAt, &metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Kind = domain.FileKind(kind)
	if modifiedAt.Valid {
		doc.ModifiedAt = modifiedAt.Time
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var kind string
	var modifiedAt sql.NullTime
	var metadataJSON string

	if err := rows.Scan(&doc.ID, &doc.DossierID, &doc.URI, &doc.Title, &kind, &doc.Content,
		&doc.SizeBytes, &modifiedAt, &metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Kind = domain.FileKind(kind)
	if modifiedAt.Valid {
		doc.ModifiedAt = modifiedAt.Time
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanExclusions scans multiple exclusion rows.
func scanExclusions(rows *sql.Rows) ([]domain.Exclusion, error) {
	var exclusions []domain.Exclusion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.Exclusion
		if err := rows.Scan(&e.ID, &e.DossierID, &e.DocumentID, &e.URI, &e.Reason, &e.ExcludedAt); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}
		exclusions = append(exclusions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exclusions: %w", err)
	}

	return exclusions, nil
}
