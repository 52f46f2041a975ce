// Package normalisers provides implementations of the Normaliser interface
// for the file formats of the inbox contract. Each normaliser knows how to
// extract text and metadata from a specific MIME type.
//
// Normalisers are registered with the Registry at startup; Defaults
// returns a registry covering plain text, PDF, JPEG/PNG, and a
// metadata-only fallback for everything else.
package normalisers
