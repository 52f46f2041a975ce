package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt has no override on disk, implementations return an
	// error and the caller falls back to its built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// PromptStoreAware is implemented by LLM services that can load prompt
// overrides from a PromptStore instead of their built-in defaults.
type PromptStoreAware interface {
	SetPromptStore(store PromptStore)
}

// Well-known prompt names used throughout the application.
const (
	// PromptAgentSystem is the system prompt for the document assistant.
	// It encodes the file-handling guard rules. No format placeholders.
	PromptAgentSystem = "agent_system"

	// PromptSummarise creates summaries of document content.
	// The template expects %d (max length) and %s (content) placeholders.
	PromptSummarise = "summarise"
)
