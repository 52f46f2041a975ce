package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// Ensure AgentService implements the interface.
var _ driving.AgentService = (*AgentService)(nil)

// maxHistoryMessages bounds conversation history to keep requests small.
const maxHistoryMessages = 20

// summariseMaxChars is the length hint passed to the model when
// summarising a document.
const summariseMaxChars = 500

// defaultAgentSystemPrompt is the fallback when no PromptStore is configured.
const defaultAgentSystemPrompt = `You are a KYC document assistant. You help compliance officers review the customer documents collected in a dossier directory.

You are given an inventory of the dossier's files and, where available, short previews of their text content. Treat every document as confidential customer data.

Handling rules:
1. Only discuss documents that appear in the inventory. Never invent documents.
2. When a document was catalogued without text (images, large files, PDFs without extracted text), say so rather than guessing at its content.
3. Cite documents by their file name when you reference them.
4. Be concise and factual. Flag missing or unreadable documents when asked about completeness.`

// AgentService answers questions about one dossier's catalogued documents.
// Every question gets a freshly assembled context: the full document
// inventory, plus text previews for documents within the guard budgets.
type AgentService struct {
	llm         driven.LLMService
	docStore    driven.DocumentStore
	promptStore driven.PromptStore
	settings    domain.AgentSettings
	dossierID   string

	mu      sync.Mutex
	history []driven.ChatMessage
}

// NewAgentService creates an agent session bound to a dossier.
// The LLM service may be nil; Ask then fails with ErrLLMUnavailable.
func NewAgentService(
	llm driven.LLMService,
	docStore driven.DocumentStore,
	promptStore driven.PromptStore,
	settings domain.AgentSettings,
	dossierID string,
) *AgentService {
	if aware, ok := llm.(driven.PromptStoreAware); ok && promptStore != nil {
		aware.SetPromptStore(promptStore)
	}
	return &AgentService{
		llm:         llm,
		docStore:    docStore,
		promptStore: promptStore,
		settings:    settings.WithDefaults(),
		dossierID:   dossierID,
	}
}

// Ask sends a question and returns the assistant's answer.
// Conversation history accumulates across calls.
func (s *AgentService) Ask(ctx context.Context, question string) (*driving.Answer, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	docContext, stats, err := s.assembleContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}

	systemPrompt := s.systemPrompt() + "\n\n" + docContext

	s.mu.Lock()
	messages := make([]driven.ChatMessage, 0, len(s.history)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: systemPrompt})
	messages = append(messages, s.history...)
	messages = append(messages, driven.ChatMessage{Role: "user", Content: question})
	s.mu.Unlock()

	logger.Debug("Agent context: %d listed, %d previewed, %d skipped, %d bytes",
		stats.DocumentsListed, stats.DocumentsPreviewed, stats.DocumentsSkipped, stats.ContextBytes)

	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	s.mu.Lock()
	s.history = append(s.history,
		driven.ChatMessage{Role: "user", Content: question},
		driven.ChatMessage{Role: "assistant", Content: reply},
	)
	if len(s.history) > maxHistoryMessages {
		s.history = s.history[len(s.history)-maxHistoryMessages:]
	}
	s.mu.Unlock()

	return &driving.Answer{Text: reply, Stats: stats}, nil
}

// Summarise produces a short summary of one catalogued document.
// Only documents with extracted text within the size budget are
// summarised; the guards mirror the context assembly rules.
func (s *AgentService) Summarise(ctx context.Context, documentID string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	if !doc.HasContent() {
		return "", fmt.Errorf("%w: %s has no extracted text", domain.ErrBinaryContent, doc.Title)
	}
	if doc.SizeBytes > s.settings.MaxFileBytes {
		return "", fmt.Errorf("%w: %s is %s", domain.ErrFileTooLarge, doc.Title,
			domain.FormatSize(doc.SizeBytes))
	}

	summary, err := s.llm.Summarise(ctx, doc.Content, summariseMaxChars)
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	return summary, nil
}

// Reset clears the conversation history.
func (s *AgentService) Reset() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// ModelName returns the backing model, or empty when no LLM is configured.
func (s *AgentService) ModelName() string {
	if s.llm == nil {
		return ""
	}
	return s.llm.ModelName()
}

// Ping verifies the language model is reachable.
func (s *AgentService) Ping(ctx context.Context) error {
	if s.llm == nil {
		return domain.ErrLLMUnavailable
	}
	return s.llm.Ping(ctx)
}

// assembleContext builds the guarded document context for one question.
// The inventory always lists every catalogued document. Text previews
// are added only for documents with extracted content within the size
// budget, capped at MaxContextDocs.
func (s *AgentService) assembleContext(ctx context.Context) (string, driving.ContextStats, error) {
	var stats driving.ContextStats

	docs, err := s.docStore.ListDocuments(ctx, s.dossierID)
	if err != nil {
		return "", stats, err
	}

	var b strings.Builder
	b.WriteString("## Dossier inventory\n\n")
	if len(docs) == 0 {
		b.WriteString("(no documents catalogued yet)\n")
	}
	for _, doc := range docs {
		fmt.Fprintf(&b, "- %s (%s, %s)", doc.Title, doc.Kind.Description(),
			domain.FormatSize(doc.SizeBytes))
		if !doc.HasContent() {
			b.WriteString(" [no text extracted]")
		}
		b.WriteString("\n")
	}
	stats.DocumentsListed = len(docs)

	b.WriteString("\n## Document previews\n")
	for _, doc := range docs {
		if !doc.HasContent() || doc.SizeBytes > s.settings.MaxFileBytes {
			stats.DocumentsSkipped++
			continue
		}
		if stats.DocumentsPreviewed >= s.settings.MaxContextDocs {
			stats.DocumentsSkipped++
			continue
		}

		fmt.Fprintf(&b, "\n### %s\n%s\n", doc.Title,
			headLines(doc.Content, s.settings.PreviewLines))
		stats.DocumentsPreviewed++
	}

	context := b.String()
	stats.ContextBytes = len(context)
	return context, stats, nil
}

// systemPrompt loads the agent system prompt, falling back to the
// built-in default.
func (s *AgentService) systemPrompt() string {
	if s.promptStore == nil {
		return defaultAgentSystemPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptAgentSystem)
	if err != nil {
		return defaultAgentSystemPrompt
	}
	return prompt
}
