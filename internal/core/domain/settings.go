package domain

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider for the assistant.
type AIProvider string

// Available AI providers.
const (
	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// Default guard limits. The assistant never feeds the model more than
// these budgets allow; oversized files are described, not read.
const (
	// DefaultMaxFileBytes is the largest file whose content is read.
	DefaultMaxFileBytes = 500 * 1024

	// DefaultPreviewLines is how many leading lines a text preview shows.
	DefaultPreviewLines = 20

	// DefaultMaxContextDocs caps how many documents are previewed per question.
	DefaultMaxContextDocs = 10
)

// AgentSettings holds assistant behaviour configuration.
type AgentSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider

	// Model is the provider-specific model name. Empty selects the
	// provider default.
	Model string

	// APIKey authenticates cloud providers. Unused for local ones.
	APIKey string

	// BaseURL overrides the provider endpoint. Empty selects the default.
	BaseURL string

	// MaxFileBytes is the content size budget per file.
	MaxFileBytes int64

	// PreviewLines is the number of leading lines shown per text preview.
	PreviewLines int

	// MaxContextDocs caps previewed documents per question.
	MaxContextDocs int
}

// Validate checks the settings are usable for starting a session.
func (s AgentSettings) Validate() error {
	if !s.Provider.IsValid() {
		return ErrUnsupportedType
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return ErrLLMUnavailable
	}
	if s.MaxFileBytes <= 0 || s.PreviewLines <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// WithDefaults fills zero-valued guard limits with the defaults.
func (s AgentSettings) WithDefaults() AgentSettings {
	if s.Provider == "" {
		s.Provider = AIProviderAnthropic
	}
	if s.MaxFileBytes == 0 {
		s.MaxFileBytes = DefaultMaxFileBytes
	}
	if s.PreviewLines == 0 {
		s.PreviewLines = DefaultPreviewLines
	}
	if s.MaxContextDocs == 0 {
		s.MaxContextDocs = DefaultMaxContextDocs
	}
	return s
}
