package normalisers

import (
	"github.com/BruceY-rgb/bank-kyc/internal/normalisers/fallback"
	"github.com/BruceY-rgb/bank-kyc/internal/normalisers/image"
	"github.com/BruceY-rgb/bank-kyc/internal/normalisers/pdf"
	"github.com/BruceY-rgb/bank-kyc/internal/normalisers/plaintext"
)

// Defaults returns a registry covering the inbox contract:
// plain text, PDF, JPEG/PNG, and a metadata-only fallback.
func Defaults() *Registry {
	reg := NewRegistry()
	reg.Register(plaintext.New())
	reg.Register(pdf.New())
	reg.Register(image.New())
	reg.Register(fallback.New())
	return reg
}
