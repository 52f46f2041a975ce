// Package inbox implements the Scanner port for a local drop directory.
// The directory is the working area an external agent is pointed at; the
// scanner walks it, detects file formats, and reads content only within
// the configured size budget.
package inbox

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.Scanner = (*Scanner)(nil)

// Scanner walks a dossier's drop directory.
type Scanner struct {
	dossierID       string
	rootPath        string
	maxContentBytes int64
}

// New creates a scanner for a dossier directory. Files larger than
// maxContentBytes are picked up metadata-only.
func New(dossierID, rootPath string, maxContentBytes int64) *Scanner {
	if maxContentBytes <= 0 {
		maxContentBytes = domain.DefaultMaxFileBytes
	}
	return &Scanner{
		dossierID:       dossierID,
		rootPath:        rootPath,
		maxContentBytes: maxContentBytes,
	}
}

// DossierID returns the configured dossier ID.
func (s *Scanner) DossierID() string {
	return s.dossierID
}

// Validate checks the directory exists and is readable.
func (s *Scanner) Validate(_ context.Context) error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDossierPathInvalid, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrDossierPathInvalid, s.rootPath)
	}
	return nil
}

// FullScan walks the entire directory and emits every visible file.
// Sends ScanComplete with the newest modification time as cursor.
func (s *Scanner) FullScan(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		var newest time.Time
		err := s.walk(ctx, func(path string, info fs.FileInfo) error {
			raw, err := s.readRaw(path, info)
			if err != nil {
				logger.Warn("skipping %s: %v", path, err)
				return nil
			}
			if info.ModTime().After(newest) {
				newest = info.ModTime()
			}
			select {
			case docs <- *raw:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errs <- err
			return
		}
		errs <- &driven.ScanComplete{NewCursor: encodeCursor(newest)}
	}()

	return docs, errs
}

// IncrementalScan emits only files modified after the cursor in state.
// A missing or malformed cursor degrades to a full walk.
func (s *Scanner) IncrementalScan(ctx context.Context, state domain.ScanState) (<-chan domain.RawDocumentChange, <-chan error) {
	changes := make(chan domain.RawDocumentChange)
	errs := make(chan error, 1)

	since := decodeCursor(state.Cursor)

	go func() {
		defer close(changes)
		defer close(errs)

		newest := since
		err := s.walk(ctx, func(path string, info fs.FileInfo) error {
			if !info.ModTime().After(since) {
				return nil
			}
			raw, err := s.readRaw(path, info)
			if err != nil {
				logger.Warn("skipping %s: %v", path, err)
				return nil
			}
			if info.ModTime().After(newest) {
				newest = info.ModTime()
			}
			change := domain.RawDocumentChange{
				Type:     domain.ChangeUpdated,
				Document: *raw,
			}
			select {
			case changes <- change:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errs <- err
			return
		}
		errs <- &driven.ScanComplete{NewCursor: encodeCursor(newest)}
	}()

	return changes, errs
}

// Watch listens for live changes via fsnotify until the context is
// cancelled. Subdirectories are watched recursively, including ones
// created after the watch starts.
func (s *Scanner) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := s.addWatchesRecursive(watcher, s.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan domain.RawDocumentChange)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, ok := s.handleEvent(watcher, event)
				if !ok {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close releases resources.
func (s *Scanner) Close() error {
	return nil
}

// handleEvent maps an fsnotify event to a document change.
// Returns false for events that produce no change (dotfiles, new
// directories, chmod noise).
func (s *Scanner) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) (*domain.RawDocumentChange, bool) {
	if hidden(filepath.Base(event.Name)) {
		return nil, false
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		return &domain.RawDocumentChange{
			Type: domain.ChangeDeleted,
			Document: domain.RawDocument{
				DossierID: s.dossierID,
				URI:       event.Name,
			},
		}, true

	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			// File vanished between event and stat.
			return nil, false
		}
		if info.IsDir() {
			if event.Op.Has(fsnotify.Create) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("watching new directory %s: %v", event.Name, err)
				}
			}
			return nil, false
		}

		raw, err := s.readRaw(event.Name, info)
		if err != nil {
			logger.Warn("reading %s: %v", event.Name, err)
			return nil, false
		}

		changeType := domain.ChangeUpdated
		if event.Op.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.RawDocumentChange{Type: changeType, Document: *raw}, true

	default:
		return nil, false
	}
}

// addWatchesRecursive watches root and every visible subdirectory.
func (s *Scanner) addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// walk visits every visible regular file under the root.
// Dotfiles and dot-directories are skipped; symlinked directories are
// not followed. Files that vanish mid-walk are skipped silently.
func (s *Scanner) walk(ctx context.Context, visit func(path string, info fs.FileInfo) error) error {
	return filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
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
			if path != s.rootPath && hidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden(d.Name()) || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		return visit(path, info)
	})
}

// readRaw builds a RawDocument for a file. The header is always read for
// format detection; full content only within the size budget.
func (s *Scanner) readRaw(path string, info fs.FileInfo) (*domain.RawDocument, error) {
	head, err := readHead(path, domain.HeaderLen)
	if err != nil {
		return nil, err
	}
	kind := domain.DetectKind(path, head)

	var content []byte
	if info.Size() <= s.maxContentBytes {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Debug("content budget exceeded for %s (%s), metadata only",
			path, domain.FormatSize(info.Size()))
	}

	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	return &domain.RawDocument{
		DossierID:  s.dossierID,
		URI:        path,
		MIMEType:   kind.MIMEType(),
		Content:    content,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
		Metadata: map[string]any{
			"rel_path": rel,
			"accepted": kind.Accepted(),
		},
	}, nil
}

// readHead reads up to n leading bytes of a file.
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

// hidden reports whether a file or directory name is a dotfile.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// encodeCursor renders a modification time as an opaque cursor.
func encodeCursor(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

// decodeCursor parses a cursor back to a time. Malformed or empty
// cursors return the zero time, degrading to a full walk.
func decodeCursor(cursor string) time.Time {
	if cursor == "" {
		return time.Time{}
	}
	nanos, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}
