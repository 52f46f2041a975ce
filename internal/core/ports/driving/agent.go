package driving

import "context"

// AgentService answers questions about catalogued documents.
// It assembles a guarded context from the catalogue (inventory always,
// text previews only within the configured size budgets) and conducts a
// multi-turn conversation with the configured language model.
type AgentService interface {
	// Ask sends a question and returns the assistant's answer.
	// Conversation history accumulates across calls.
	Ask(ctx context.Context, question string) (*Answer, error)

	// Summarise produces a short summary of one catalogued document.
	// It fails with ErrBinaryContent when the document has no extracted
	// text, and with ErrFileTooLarge when it exceeds the size budget.
	Summarise(ctx context.Context, documentID string) (string, error)

	// Reset clears the conversation history.
	Reset()

	// ModelName returns the backing model, or empty when no LLM is configured.
	ModelName() string

	// Ping verifies the language model is reachable.
	Ping(ctx context.Context) error
}

// Answer is the assistant's reply plus the context accounting used to
// produce it. The stats feed the chat debug mode.
type Answer struct {
	// Text is the assistant's reply.
	Text string

	// Stats describes the context assembled for this answer.
	Stats ContextStats
}

// ContextStats describes what was fed to the model for one question.
type ContextStats struct {
	// DocumentsListed is how many documents appeared in the inventory.
	DocumentsListed int

	// DocumentsPreviewed is how many documents contributed text previews.
	DocumentsPreviewed int

	// DocumentsSkipped is how many documents were withheld for being
	// binary or over the size budget.
	DocumentsSkipped int

	// ContextBytes is the total size of the assembled context.
	ContextBytes int
}
