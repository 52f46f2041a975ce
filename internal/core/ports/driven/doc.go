// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Scanner: picks up files from a dossier directory
//   - ScannerFactory: creates scanners from dossier configuration
//   - Normaliser: transforms raw files into catalogued documents
//   - NormaliserRegistry: selects the appropriate normaliser
//   - DocumentStore: document persistence
//   - DossierStore: dossier registration persistence
//   - ScanStateStore: scan progress persistence
//   - ExclusionStore: exclusion persistence
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: language model operations. Without it, the chat
//     assistant and MCP question tools are disabled; cataloguing and
//     inventory commands keep working.
//   - PromptStore: custom prompt templates. Without it, built-in
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
