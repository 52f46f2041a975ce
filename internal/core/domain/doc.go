// Package domain defines the core business entities for the KYC inbox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a catalogued document with metadata
//   - Dossier: a registered drop directory holding documents
//   - RawDocument: opaque bytes produced by a scanner
//   - FileKind: the file-format taxonomy of the inbox contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
