// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants like Claude browse the catalogued KYC dossiers.
package mcp

import "errors"

// ErrMissingDossierService is returned when the dossier service is not provided.
var ErrMissingDossierService = errors.New("mcp: dossier service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
