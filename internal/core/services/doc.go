// Package services contains the core business logic implementations.
//
// Each service implements a driving port and depends only on driven
// ports, so the same logic serves the CLI, the chat TUI, and the MCP
// server against any storage or scanner backend.
//
//   - DossierService: registration and inventory of drop directories
//   - ScanOrchestrator: full, incremental, and watch-mode cataloguing
//   - DocumentService: access to catalogued documents
//   - AgentService: the guarded question-answering session
//   - SettingsService: typed access to assistant configuration
package services
