// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - DossierStore: Dossier registration persistence
//   - DocumentStore: Catalogued document persistence
//   - ScanStateStore: Scan progress persistence
//   - ExclusionStore: Document exclusion persistence
//
// The database lives under the data directory (default ~/.kyc/data) and is
// migrated on open from the embedded SQL files in the migrations subpackage.
package sqlite
