package tui

import "errors"

// ErrMissingAgentService is returned when the agent service is not provided.
var ErrMissingAgentService = errors.New("tui: agent service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingDossier is returned when no dossier is bound to the session.
var ErrMissingDossier = errors.New("tui: dossier is required")
