package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown scanner or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrScanInProgress indicates a scan is already running for the dossier.
	ErrScanInProgress = errors.New("scan in progress")

	// ErrLLMUnavailable indicates no language model service is configured.
	// The chat assistant is disabled without one; everything else works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrFileTooLarge indicates a file exceeds the configured content budget.
	// Oversized files are catalogued metadata-only, never read in full.
	ErrFileTooLarge = errors.New("file exceeds size budget")

	// ErrBinaryContent indicates content was requested for a non-text document.
	ErrBinaryContent = errors.New("document has no text content")

	// ErrDossierPathInvalid indicates the dossier directory is missing or unreadable.
	ErrDossierPathInvalid = errors.New("dossier path invalid")
)
