package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driving/tui"
	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat [dossier-id]",
	Short: "Chat with the assistant about a dossier",
	Long: `Chat with the assistant about the documents in a dossier.

The assistant sees the dossier's document inventory plus text previews of
the smallest text documents. It never modifies files on disk.

When only one dossier is registered the ID can be omitted.

Slash commands inside the chat:
  /list    - list the dossier's documents
  /status  - show session details
  /debug   - toggle per-answer context statistics
  /clear   - clear the conversation
  /quit    - exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if dossierService == nil || agentBuilder == nil {
		return errors.New("chat services not configured")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat requires an interactive terminal")
	}

	dossier, err := resolveChatDossier(cmd, args)
	if err != nil {
		return err
	}

	agent, err := agentBuilder(dossier.ID)
	if err != nil {
		return err
	}

	// Panic recovery so a rendering bug leaves a stack trace instead of
	// a corrupted terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Agent:    agent,
		Document: documentService,
		Scan:     scanOrchestrator,
		Dossier:  *dossier,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}

// resolveChatDossier picks the dossier to chat about. An explicit ID wins;
// otherwise a single registered dossier is selected automatically.
func resolveChatDossier(cmd *cobra.Command, args []string) (*domain.Dossier, error) {
	if len(args) == 1 {
		return dossierService.Get(cmd.Context(), args[0])
	}

	dossiers, err := dossierService.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}

	switch len(dossiers) {
	case 0:
		return nil, errors.New("no dossiers registered. Run 'kyc init <path>' first")
	case 1:
		return &dossiers[0], nil
	default:
		var buf []byte
		for _, d := range dossiers {
			buf = fmt.Appendf(buf, "\n  %s  %s", d.ID, d.Name)
		}
		return nil, fmt.Errorf("multiple dossiers registered, pass an ID:%s", buf)
	}
}
