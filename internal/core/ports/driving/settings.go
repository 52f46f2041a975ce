package driving

import "github.com/BruceY-rgb/bank-kyc/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current assistant settings, defaults applied.
	Get() (domain.AgentSettings, error)

	// Save persists assistant settings.
	Save(settings domain.AgentSettings) error

	// SetProvider configures the LLM provider.
	SetProvider(provider domain.AIProvider, model, apiKey string) error

	// SetGuards updates the file-handling budgets.
	SetGuards(maxFileBytes int64, previewLines, maxContextDocs int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AgentSettings

	// Validate checks if current settings can start an assistant session.
	Validate() error
}
