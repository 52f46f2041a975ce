package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
)

// entryRole identifies the speaker of a transcript entry.
type entryRole int

const (
	roleUser entryRole = iota
	roleAssistant
	roleInfo
	roleError
)

// entry is one line of the chat transcript.
type entry struct {
	role  entryRole
	text  string
	stats *driving.ContextStats
}

// answerReceived is emitted when the assistant finishes a question.
type answerReceived struct {
	answer *driving.Answer
	err    error
}

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *Styles

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	entries []entry

	// waiting is true while a question is in flight.
	waiting bool

	// debug prints context stats after each answer.
	debug bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat application bound to one dossier.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about the dossier, or /help"
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	app := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		input:  input,
		spin:   spin,
	}
	app.entries = append(app.entries, entry{
		role: roleInfo,
		text: fmt.Sprintf("Chatting about dossier %q (%s). Type /help for commands.",
			ports.Dossier.Name, ports.Agent.ModelName()),
	})

	return app, nil
}

// WithContext sets the cancellation context for assistant calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.ready = true
		a.refreshTranscript()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit

		case tea.KeyEnter:
			if cmd := a.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}

		default:
			// Fall through to the input component
		}

	case answerReceived:
		a.waiting = false
		if msg.err != nil {
			a.entries = append(a.entries, entry{role: roleError, text: msg.err.Error()})
		} else {
			a.entries = append(a.entries, entry{
				role:  roleAssistant,
				text:  msg.answer.Text,
				stats: &msg.answer.Stats,
			})
		}
		a.refreshTranscript()

	case spinner.TickMsg:
		if a.waiting {
			var spinCmd tea.Cmd
			a.spin, spinCmd = a.spin.Update(msg)
			cmds = append(cmds, spinCmd)
		}
	}

	if !a.waiting {
		var inputCmd tea.Cmd
		a.input, inputCmd = a.input.Update(msg)
		cmds = append(cmds, inputCmd)
	}

	var vpCmd tea.Cmd
	a.viewport, vpCmd = a.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := fmt.Sprintf("KYC assistant — %s", a.ports.Dossier.Name)
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.styles.Muted.Render(a.spin.View() + " thinking..."))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.InputField.Width(a.width - 4).Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("enter: send  /help: commands  ctrl+c: quit"))

	return b.String()
}

// submit handles the enter key: slash commands run locally, anything
// else goes to the assistant.
func (a *App) submit() tea.Cmd {
	if a.waiting {
		return nil
	}

	text := strings.TrimSpace(a.input.Value())
	if text == "" {
		return nil
	}
	a.input.Reset()

	if strings.HasPrefix(text, "/") {
		return a.runSlashCommand(text)
	}

	a.entries = append(a.entries, entry{role: roleUser, text: text})
	a.waiting = true
	a.refreshTranscript()

	return tea.Batch(a.spin.Tick, a.ask(text))
}

// ask runs the assistant call off the UI loop.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Agent.Ask(a.ctx, question)
		return answerReceived{answer: answer, err: err}
	}
}

func (a *App) runSlashCommand(text string) tea.Cmd {
	cmd := strings.Fields(text)[0]

	switch cmd {
	case "/quit", "/exit":
		return tea.Quit

	case "/clear":
		a.ports.Agent.Reset()
		a.entries = []entry{{role: roleInfo, text: "Conversation cleared."}}

	case "/debug":
		a.debug = !a.debug
		state := "off"
		if a.debug {
			state = "on"
		}
		a.entries = append(a.entries, entry{role: roleInfo, text: "Debug mode " + state + "."})

	case "/help":
		a.entries = append(a.entries, entry{role: roleInfo, text: helpText})

	case "/list":
		a.entries = append(a.entries, entry{role: roleInfo, text: a.listDocuments()})

	case "/status":
		a.entries = append(a.entries, entry{role: roleInfo, text: a.sessionStatus()})

	default:
		a.entries = append(a.entries, entry{
			role: roleError,
			text: fmt.Sprintf("Unknown command %s. Type /help for commands.", cmd),
		})
	}

	a.refreshTranscript()
	return nil
}

const helpText = `Commands:
  /list    List the catalogued documents
  /status  Show session and scan status
  /debug   Toggle context stats after each answer
  /clear   Clear the conversation
  /quit    Exit the chat`

// listDocuments renders the dossier's catalogued documents.
func (a *App) listDocuments() string {
	docs, err := a.ports.Document.ListByDossier(a.ctx, a.ports.Dossier.ID)
	if err != nil {
		return "Failed to list documents: " + err.Error()
	}
	if len(docs) == 0 {
		return "No documents catalogued yet. Run 'kyc scan' first."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d documents:\n", len(docs))
	for i := range docs {
		fmt.Fprintf(&b, "  %s (%s, %s)", docs[i].Title,
			docs[i].Kind.Description(), domain.FormatSize(docs[i].SizeBytes))
		if !docs[i].HasContent() {
			b.WriteString(" [no text]")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// sessionStatus renders the dossier and scan state.
func (a *App) sessionStatus() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dossier: %s\nPath: %s\nModel: %s",
		a.ports.Dossier.Name, a.ports.Dossier.Path, a.ports.Agent.ModelName())

	if a.ports.Scan != nil {
		status, err := a.ports.Scan.Status(a.ctx, a.ports.Dossier.ID)
		if err == nil && status.Running {
			fmt.Fprintf(&b, "\nScan: running (%d processed)", status.DocumentsProcessed)
		}
	}
	return b.String()
}

// layout sizes the viewport to the space left by header, input, and hints.
func (a *App) layout() {
	const chromeLines = 7
	height := a.height - chromeLines
	if height < 3 {
		height = 3
	}

	if a.viewport.Width == 0 {
		a.viewport = viewport.New(a.width, height)
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = height
	}
	a.input.Width = a.width - 8
}

// refreshTranscript rerenders the transcript into the viewport.
func (a *App) refreshTranscript() {
	var b strings.Builder

	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.role {
		case roleUser:
			b.WriteString(a.styles.UserLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(a.styles.Normal.Render(e.text))
		case roleAssistant:
			b.WriteString(a.styles.AssistantLabel.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(a.styles.Normal.Render(e.text))
			if a.debug && e.stats != nil {
				b.WriteString("\n")
				b.WriteString(a.styles.Muted.Render(formatStats(e.stats)))
			}
		case roleInfo:
			b.WriteString(a.styles.Muted.Render(e.text))
		case roleError:
			b.WriteString(a.styles.Error.Render("Error: " + e.text))
		}
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

func formatStats(stats *driving.ContextStats) string {
	return fmt.Sprintf("[context: %d listed, %d previewed, %d skipped, %s]",
		stats.DocumentsListed, stats.DocumentsPreviewed, stats.DocumentsSkipped,
		domain.FormatSize(int64(stats.ContextBytes)))
}
