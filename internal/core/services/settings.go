package services

import (
	"fmt"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAgentProvider  = "agent.provider"
	keyAgentModel     = "agent.model"
	keyAgentAPIKey    = "agent.api_key"
	keyAgentBaseURL   = "agent.base_url"
	keyMaxFileBytes   = "agent.guards.max_file_bytes"
	keyPreviewLines   = "agent.guards.preview_lines"
	keyMaxContextDocs = "agent.guards.max_context_docs"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current assistant settings, defaults applied.
func (s *SettingsService) Get() (domain.AgentSettings, error) {
	settings := domain.AgentSettings{
		Provider:       domain.AIProvider(s.configStore.GetString(keyAgentProvider)),
		Model:          s.configStore.GetString(keyAgentModel),
		APIKey:         s.configStore.GetString(keyAgentAPIKey),
		BaseURL:        s.configStore.GetString(keyAgentBaseURL),
		MaxFileBytes:   int64(s.configStore.GetInt(keyMaxFileBytes)),
		PreviewLines:   s.configStore.GetInt(keyPreviewLines),
		MaxContextDocs: s.configStore.GetInt(keyMaxContextDocs),
	}
	return settings.WithDefaults(), nil
}

// Save persists assistant settings.
func (s *SettingsService) Save(settings domain.AgentSettings) error {
	settings = settings.WithDefaults()

	if err := s.configStore.Set(keyAgentProvider, settings.Provider.String()); err != nil {
		return fmt.Errorf("save provider: %w", err)
	}
	if err := s.configStore.Set(keyAgentModel, settings.Model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := s.configStore.Set(keyAgentBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("save base_url: %w", err)
	}
	// An empty key never clobbers a stored one
	if settings.APIKey != "" {
		if err := s.configStore.Set(keyAgentAPIKey, settings.APIKey); err != nil {
			return fmt.Errorf("save api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyMaxFileBytes, int(settings.MaxFileBytes)); err != nil {
		return fmt.Errorf("save max_file_bytes: %w", err)
	}
	if err := s.configStore.Set(keyPreviewLines, settings.PreviewLines); err != nil {
		return fmt.Errorf("save preview_lines: %w", err)
	}
	if err := s.configStore.Set(keyMaxContextDocs, settings.MaxContextDocs); err != nil {
		return fmt.Errorf("save max_context_docs: %w", err)
	}

	return s.configStore.Save()
}

// SetProvider configures the LLM provider.
func (s *SettingsService) SetProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		// Only reject when no key is stored either
		current, err := s.Get()
		if err != nil || current.APIKey == "" {
			return fmt.Errorf("%w: provider %s requires an API key", domain.ErrInvalidInput, provider)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Provider = provider
	settings.Model = model
	if apiKey != "" {
		settings.APIKey = apiKey
	}
	return s.Save(settings)
}

// SetGuards updates the file-handling budgets.
func (s *SettingsService) SetGuards(maxFileBytes int64, previewLines, maxContextDocs int) error {
	if maxFileBytes <= 0 || previewLines <= 0 || maxContextDocs <= 0 {
		return fmt.Errorf("%w: guard limits must be positive", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.MaxFileBytes = maxFileBytes
	settings.PreviewLines = previewLines
	settings.MaxContextDocs = maxContextDocs
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AgentSettings {
	return domain.AgentSettings{}.WithDefaults()
}

// Validate checks if current settings can start an assistant session.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}
